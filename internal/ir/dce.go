package ir

// ============================================================================
// 死操作清理
// ============================================================================

// EliminateDeadOps 删除结果无人使用的纯操作（ConstOp、BinOp）
//
// 项物化只是为了让范围分析给出界，结果不会被任何访存引用，
// 改写完成后这些操作全部是死代码。返回删除的操作数量。
func EliminateDeadOps(f *Func) int {
	uses := make(map[*Value]int)
	f.WalkOps(func(op Op) {
		switch o := op.(type) {
		case *BinOp:
			uses[o.LHS]++
			uses[o.RHS]++
		case *LoadOp:
			for _, v := range o.Operands {
				uses[v]++
			}
		case *StoreOp:
			for _, v := range o.Operands {
				uses[v]++
			}
		}
	})

	removed := 0
	for {
		n := sweepDeadOps(&f.Body, uses)
		if n == 0 {
			break
		}
		removed += n
	}
	return removed
}

// sweepDeadOps 对操作列表做一遍逆序清扫
//
// 逆序保证同一列表内的使用链（use 在 def 之后）一遍删净。
func sweepDeadOps(list *[]Op, uses map[*Value]int) int {
	removed := 0
	s := *list
	for i := len(s) - 1; i >= 0; i-- {
		switch op := s[i].(type) {
		case *ForOp:
			removed += sweepDeadOps(&op.Body, uses)
		case *ConstOp:
			if uses[op.Result] == 0 {
				s = append(s[:i], s[i+1:]...)
				removed++
			}
		case *BinOp:
			if uses[op.Result] == 0 {
				uses[op.LHS]--
				uses[op.RHS]--
				s = append(s[:i], s[i+1:]...)
				removed++
			}
		}
	}
	*list = s
	return removed
}

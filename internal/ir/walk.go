package ir

// ============================================================================
// 遍历
// ============================================================================

// WalkAccesses 深度优先遍历函数体内所有访存操作
//
// 每次回调会拿到一个插入点位于访存操作之前的 Builder，
// 回调内插入的操作不会被重复访问，遍历在访存之后继续。
func (f *Func) WalkAccesses(visit func(b *Builder, access AccessOp)) {
	walkAccessList(f, &f.Body, visit)
}

func walkAccessList(fn *Func, list *[]Op, visit func(b *Builder, access AccessOp)) {
	for i := 0; i < len(*list); i++ {
		switch op := (*list)[i].(type) {
		case *ForOp:
			walkAccessList(fn, &op.Body, visit)
		case AccessOp:
			b := NewBuilder(fn, list, i)
			visit(b, op)
			// 回调插入了 b.idx-i 个操作，访存现在位于 b.idx
			i = b.idx
		}
	}
}

// WalkOps 深度优先遍历所有操作（含循环体）
func (f *Func) WalkOps(visit func(op Op)) {
	walkOpList(f.Body, visit)
}

func walkOpList(list []Op, visit func(op Op)) {
	for _, op := range list {
		visit(op)
		if forOp, ok := op.(*ForOp); ok {
			walkOpList(forOp.Body, visit)
		}
	}
}

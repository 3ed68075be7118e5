// Package ir 定义循环嵌套中间表示
//
// 这是一个极简的 SSA 风格 IR：函数体由循环、常量、整数运算和
// 访存操作构成。访存操作携带仿射索引映射（affine.Map）作为属性，
// 映射的操作数绑定到循环变量和符号。所有值都是 i64 下标。
package ir

import (
	"fmt"

	"github.com/tangzhangming/kunlun/internal/affine"
)

// ============================================================================
// 值与操作
// ============================================================================

// Value SSA 值：循环变量、符号或操作结果
type Value struct {
	ID   int    // 函数内唯一编号
	Name string // 可读名（循环变量、符号有名字；临时值为空）
}

// String 有名字的值打印为 $name，临时值打印为 %id
func (v *Value) String() string {
	if v.Name != "" {
		return "$" + v.Name
	}
	return fmt.Sprintf("%%%d", v.ID)
}

// Op IR 操作接口
type Op interface {
	opNode()
}

// ForOp 计数循环，循环变量依次取 Lower, Lower+Step, ... < Upper
type ForOp struct {
	IV    *Value // 循环变量
	Lower int64
	Upper int64
	Step  int64 // 要求 > 0
	Body  []Op
}

// ConstOp 整数常量定义
type ConstOp struct {
	Result *Value
	Val    int64
}

// BinKind 二元运算类型
type BinKind int

const (
	BinAdd BinKind = iota
	BinMul
	BinFloorDiv
	BinMod
)

func (k BinKind) String() string {
	switch k {
	case BinAdd:
		return "add"
	case BinMul:
		return "mul"
	case BinFloorDiv:
		return "floordiv"
	case BinMod:
		return "mod"
	}
	return fmt.Sprintf("BinKind(%d)", int(k))
}

// BinOp 二元整数运算
type BinOp struct {
	Kind   BinKind
	Result *Value
	LHS    *Value
	RHS    *Value
}

// LoadOp 读访存，下标由索引映射作用于操作数得到
type LoadOp struct {
	Buffer   string     // 缓冲区名
	Map      affine.Map // 索引映射属性
	Operands []*Value   // 前 Map.NumDims 个是维度操作数，其余是符号操作数
}

// StoreOp 写访存，结构与 LoadOp 相同
type StoreOp struct {
	Buffer   string
	Map      affine.Map
	Operands []*Value
}

func (*ForOp) opNode()   {}
func (*ConstOp) opNode() {}
func (*BinOp) opNode()   {}
func (*LoadOp) opNode()  {}
func (*StoreOp) opNode() {}

// ============================================================================
// 访存操作协议
// ============================================================================

// AccessOp 携带索引映射的访存操作（load/store）
//
// SetIndexMap 以整体替换的方式更新映射，并强制维度数、符号数、
// 结果数与原映射一致。
type AccessOp interface {
	Op
	BufferName() string
	IndexMap() affine.Map
	SetIndexMap(m affine.Map) error
	MapOperands() []*Value
}

func (l *LoadOp) BufferName() string     { return l.Buffer }
func (l *LoadOp) IndexMap() affine.Map   { return l.Map }
func (l *LoadOp) MapOperands() []*Value  { return l.Operands }
func (s *StoreOp) BufferName() string    { return s.Buffer }
func (s *StoreOp) IndexMap() affine.Map  { return s.Map }
func (s *StoreOp) MapOperands() []*Value { return s.Operands }

func (l *LoadOp) SetIndexMap(m affine.Map) error {
	if err := checkSameShape(l.Map, m); err != nil {
		return err
	}
	l.Map = m
	return nil
}

func (s *StoreOp) SetIndexMap(m affine.Map) error {
	if err := checkSameShape(s.Map, m); err != nil {
		return err
	}
	s.Map = m
	return nil
}

func checkSameShape(old, new affine.Map) error {
	if old.NumDims != new.NumDims || old.NumSyms != new.NumSyms || len(old.Results) != len(new.Results) {
		return fmt.Errorf("index map shape changed: (%d dims, %d syms, %d results) -> (%d dims, %d syms, %d results)",
			old.NumDims, old.NumSyms, len(old.Results),
			new.NumDims, new.NumSyms, len(new.Results))
	}
	return nil
}

// ============================================================================
// 函数与模块
// ============================================================================

// SymbolDecl 函数符号参数及其取值范围（半开区间 [Lo, Hi)）
type SymbolDecl struct {
	Value *Value
	Lo    int64
	Hi    int64
}

// Func IR 函数
type Func struct {
	Name    string
	Symbols []SymbolDecl
	Body    []Op

	nextID int // 值编号分配器
}

// NewValue 分配一个新的 SSA 值
func (f *Func) NewValue(name string) *Value {
	f.nextID++
	return &Value{ID: f.nextID, Name: name}
}

// Module IR 模块：若干函数
type Module struct {
	Funcs []*Func
}

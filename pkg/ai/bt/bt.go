// Package bt 是一个极简的行为树：组合节点、条件节点、动作节点和两个装饰器。
// 节点本身不保存状态，所有状态放在黑板里，同一棵树可以被多个单位共享。
package bt

type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusRunning
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusFailure:
		return "Failure"
	case StatusRunning:
		return "Running"
	}
	return "Unknown"
}

type Node interface {
	Tick(bb Blackboard) Status
}

// Blackboard 由调用方定义具体类型，节点内部自行断言
type Blackboard interface{}

// Selector 依次执行子节点，直到有一个不是 Failure
type Selector struct {
	Children []Node
}

func (s *Selector) Tick(bb Blackboard) Status {
	for _, child := range s.Children {
		if status := child.Tick(bb); status != StatusFailure {
			return status
		}
	}
	return StatusFailure
}

// Sequence 依次执行子节点，直到有一个不是 Success
type Sequence struct {
	Children []Node
}

func (s *Sequence) Tick(bb Blackboard) Status {
	for _, child := range s.Children {
		if status := child.Tick(bb); status != StatusSuccess {
			return status
		}
	}
	return StatusSuccess
}

type ConditionFunc func(bb Blackboard) bool

type Condition struct {
	Check ConditionFunc
}

func (c *Condition) Tick(bb Blackboard) Status {
	if c.Check == nil {
		return StatusFailure
	}
	if c.Check(bb) {
		return StatusSuccess
	}
	return StatusFailure
}

type ActionFunc func(bb Blackboard) Status

type Action struct {
	Do ActionFunc
}

func (a *Action) Tick(bb Blackboard) Status {
	if a.Do == nil {
		return StatusFailure
	}
	return a.Do(bb)
}

// Inverter 交换子节点的 Success 和 Failure，Running 原样返回
type Inverter struct {
	Child Node
}

func (i *Inverter) Tick(bb Blackboard) Status {
	switch i.Child.Tick(bb) {
	case StatusSuccess:
		return StatusFailure
	case StatusFailure:
		return StatusSuccess
	}
	return StatusRunning
}

// Succeeder 无论子节点结果如何都返回 Success
type Succeeder struct {
	Child Node
}

func (s *Succeeder) Tick(bb Blackboard) Status {
	s.Child.Tick(bb)
	return StatusSuccess
}

// 便捷构造函数

func Select(children ...Node) *Selector { return &Selector{Children: children} }

func Seq(children ...Node) *Sequence { return &Sequence{Children: children} }

func If(check ConditionFunc) *Condition { return &Condition{Check: check} }

func Not(check ConditionFunc) *Inverter { return &Inverter{Child: If(check)} }

func Do(fn ActionFunc) *Action { return &Action{Do: fn} }

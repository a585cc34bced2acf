package cpu

const (
	STACK_LIMIT = 16 // Maximum stack depth
)

// Stack is the bounded return address stack.
type Stack struct {
	Data [STACK_LIMIT]uint16 // Saved return addresses.
	Sp   int                 // Next free slot.
}

// Push saves a value, returning false if the stack is full.
func (s *Stack) Push(value uint16) (ok bool) {
	if s.Full() {
		return
	}

	s.Data[s.Sp] = value
	s.Sp++
	return true
}

func (s *Stack) Pop() (value uint16, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Sp--
	}
	return
}

func (s *Stack) Empty() bool {
	return s.Sp <= 0
}

// Full is also true for an out of range stack pointer.
func (s *Stack) Full() bool {
	return s.Sp < 0 || s.Sp >= STACK_LIMIT
}

func (s *Stack) Len() int {
	return s.Sp
}

func (s *Stack) Peek() (value uint16, ok bool) {
	if s.Empty() || s.Sp > STACK_LIMIT {
		return
	}

	return s.Data[s.Sp-1], true
}

func (s *Stack) Reset() {
	clear(s.Data[:])
	s.Sp = 0
}

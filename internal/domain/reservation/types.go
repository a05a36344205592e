package reservation

type Status string

const (
	StatusReserved Status = "RESERVED"
	StatusCanceled Status = "CANCELED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusReserved, StatusCanceled:
		return true
	default:
		return false
	}
}

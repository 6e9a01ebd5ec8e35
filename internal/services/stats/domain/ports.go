package domain

// DecisionsInput selects the aggregation window in days
type DecisionsInput struct {
	Days int `json:"days,omitempty" validate:"omitempty,min=1,max=365" example:"30"`
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	RecorderPort
	ReaderPort
}

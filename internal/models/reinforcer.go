package models

// Reinforcer tracks the success rate of a reward across trials.
type Reinforcer struct {
	Name        string `json:"name"`
	Successes   int    `json:"successes"`
	Attempts    int    `json:"attempts"`
	RatePercent int    `json:"rate_percent"`
}

// ReinforcerRequest is the payload for recording reinforcer trials.
type ReinforcerRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Successes int    `json:"successes" validate:"min=0,max=10000"`
	Attempts  int    `json:"attempts" validate:"required,gt=0,max=10000"`
}

package domain

// User is the subset of an account the engine needs.
type User struct {
	ID       string
	Name     string
	Email    string
	Approved bool
}

// Pond carries the external pond settings consumed by the engine.
type Pond struct {
	ID                  string
	Name                string
	FeedingFrequency    int
	InitialStockedCount int
}

package model

// Quote is the quote of the day shown on the login screen
type Quote struct {
	ID      string `json:"id,omitempty"`
	Content string `json:"content"`
	Author  string `json:"author"`
	Pic     string `json:"pic,omitempty"`
}

// DefaultQuote is displayed until a quote has been fetched
func DefaultQuote() Quote {
	return Quote{
		ID:      "0",
		Content: "We are all in the gutter, but some of us are looking at the stars.",
		Author:  "Oscar Wilde",
		Pic:     "/assets/img/quotes/0.jpg",
	}
}

package server

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

const quotesCollection = "quotes"

var quotes = []struct {
	content string
	author  string
}{
	{"We are all in the gutter, but some of us are looking at the stars.", "Oscar Wilde"},
	{"The secret of getting ahead is getting started.", "Mark Twain"},
	{"Well done is better than well said.", "Benjamin Franklin"},
	{"It always seems impossible until it's done.", "Nelson Mandela"},
	{"Simplicity is the ultimate sophistication.", "Leonardo da Vinci"},
	{"What we think, we become.", "Buddha"},
	{"Nothing will work unless you do.", "Maya Angelou"},
	{"Quality is not an act, it is a habit.", "Aristotle"},
	{"Action is the foundational key to all success.", "Pablo Picasso"},
	{"The way to get started is to quit talking and begin doing.", "Walt Disney"},
}

// seed inserts the quotes missing from the quotes collection
func (s *Server) seed(ctx context.Context) error {
	for i, q := range quotes {
		id := strconv.Itoa(i)
		doc := Document{
			"id":      id,
			"content": q.content,
			"author":  q.author,
			"pic":     fmt.Sprintf("/assets/img/quotes/%d.jpg", i),
		}
		if err := s.docs.Insert(ctx, quotesCollection, doc); err != nil && !errors.Is(err, ErrConflict) {
			return err
		}
	}
	return nil
}

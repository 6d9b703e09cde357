package service

import (
	"context"
	"math/rand/v2"
	"strconv"

	"github.com/existflow/taskboard/internal/api"
	"github.com/existflow/taskboard/internal/model"
)

// QuoteCount is the number of quotes the backend serves
const QuoteCount = 10

// QuoteService fetches the quote of the day
type QuoteService struct {
	client *api.Client
	pick   func(n int) int
}

// NewQuoteService creates a quote service that picks quotes uniformly
func NewQuoteService(client *api.Client) *QuoteService {
	return &QuoteService{client: client, pick: rand.IntN}
}

// Get fetches one of the QuoteCount quotes
func (s *QuoteService) Get(ctx context.Context) (model.Quote, error) {
	id := strconv.Itoa(s.pick(QuoteCount))
	var quote model.Quote
	if err := s.client.Get(ctx, s.client.URL(nil, quotesPath, id), &quote); err != nil {
		return model.Quote{}, err
	}
	return quote, nil
}

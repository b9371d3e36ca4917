package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/qepting91/jamcomments/internal/domain"
)

// MockClient implements domain.Collector with a fixed collection for offline builds
type MockClient struct {
	Comments domain.Collection
}

func NewMockClient() *MockClient {
	return &MockClient{Comments: sampleComments()}
}

func (mc *MockClient) FetchComments(ctx context.Context, req domain.FetchRequest) (domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(domain.Collection, len(mc.Comments))
	copy(out, mc.Comments)
	return out, nil
}

func sampleComments() domain.Collection {
	base := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	var comments domain.Collection
	for i := 0; i < 4; i++ {
		author := domain.Author{Name: fmt.Sprintf("Reader %d", i+1)}
		if i%2 == 1 {
			author.Website = fmt.Sprintf("https://reader%d.example", i+1)
		}
		comments = append(comments, domain.Comment{
			ID:       domain.NewCommentID(fmt.Sprintf("mock_%d", i+1)),
			PostURL:  fmt.Sprintf("http://localhost:8080/blog/post-%d", i%2+1),
			Author:   author,
			Text:     fmt.Sprintf("<p>Simulated comment #%d</p>", i+1),
			PostedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return comments
}

package service

import (
	"context"
	"fmt"

	"github.com/niksmo/bant-confirm/internal/core/domain"
)

// Transcribe turns recognition results into a catalog search. Without any
// result the assistant is idle; until a final segment arrives the reply only
// echoes the interim text.
func (s *Service) Transcribe(
	ctx context.Context, rs []domain.SpeechResult,
) (domain.AssistantReply, error) {
	const op = "Service.Transcribe"

	if len(rs) == 0 {
		return domain.AssistantReply{Status: domain.AssistantIdle}, nil
	}

	interim, final := domain.SplitTranscript(rs)
	if final == "" {
		status := interim
		if status == "" {
			status = domain.AssistantListen
		}
		return domain.AssistantReply{Status: status}, nil
	}

	res, err := s.SearchCatalog(ctx, domain.CatalogQuery{Text: final})
	if err != nil {
		return domain.AssistantReply{}, fmt.Errorf("%s: %w", op, err)
	}

	reply := domain.AssistantReply{
		Status:   domain.AssistantListen,
		Query:    final,
		Searched: true,
		Count:    res.Count,
	}
	if res.Count == 0 {
		reply.Status = domain.AssistantNotFound
		reply.NotFound = true
		reply.Prompt = domain.AssistantPrompt
	}
	return reply, nil
}

func (s *Service) RecognitionStatus(code string) string {
	return domain.RecognitionStatus(code)
}

func (s *Service) Greeting(ctx context.Context) string {
	return domain.Greeting(s.store.Snapshot().User)
}

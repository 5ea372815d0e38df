package session

import (
	"context"
	"fmt"

	"marketradar/internal"
	"marketradar/internal/ingest"
)

type Backend interface {
	SearchSold(ctx context.Context, query string) ([]byte, error)
	GenerateCSV(ctx context.Context, query string) ([]byte, error)
	LoadCached(ctx context.Context) ([]byte, bool, error)
}

func (s *Session) SearchSold(ctx context.Context, client Backend, query string) error {
	blob, err := client.SearchSold(ctx, query)
	if err != nil {
		s.Fail(err)
		return err
	}

	batch, err := ingest.FromJSON(blob, internal.SourceEbay)
	if err != nil {
		err = fmt.Errorf("decode search response: %w", err)
		s.Fail(err)
		return err
	}

	s.ReplaceBatch(batch)
	return nil
}

func (s *Session) SearchValue(ctx context.Context, client Backend, query string) error {
	blob, err := client.GenerateCSV(ctx, query)
	if err != nil {
		s.Fail(err)
		return err
	}

	s.ReplaceBatch(ingest.FromCSV(string(blob), internal.SourceAmazon))
	return nil
}

// A missing cached export means "no data yet" and changes nothing.
func (s *Session) LoadCached(ctx context.Context, client Backend) (bool, error) {
	blob, found, err := client.LoadCached(ctx)
	if err != nil {
		s.Fail(err)
		return false, err
	}
	if !found {
		return false, nil
	}

	s.ReplaceBatch(ingest.FromCSV(string(blob), internal.SourceAmazon))
	return true, nil
}

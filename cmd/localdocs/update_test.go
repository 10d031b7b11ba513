package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/jubalm/localdocs"
	"github.com/jubalm/localdocs/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCommand(t *testing.T) {
	t.Parallel()

	t.Run("updates given IDs and reports the tally", func(t *testing.T) {
		t.Parallel()

		var updated []string
		var stdout, stderr bytes.Buffer
		deps := &Dependencies{
			Ctx:    context.Background(),
			Stdout: &stdout,
			Stderr: &stderr,
			Store: &mock.DocumentStore{
				UpdateFn: func(ctx context.Context, id string) error {
					updated = append(updated, id)
					return nil
				},
			},
		}

		cmd := &UpdateCmd{IDs: []string{"aaaa0001", "aaaa0002"}}
		require.NoError(t, cmd.Run(deps))
		assert.Equal(t, []string{"aaaa0001", "aaaa0002"}, updated)
		assert.Contains(t, stdout.String(), "Updated 2/2 documents.")
	})

	t.Run("all expands to every registered ID in order", func(t *testing.T) {
		t.Parallel()

		var updated []string
		var stdout bytes.Buffer
		deps := &Dependencies{
			Ctx:    context.Background(),
			Stdout: &stdout,
			Stderr: &bytes.Buffer{},
			Store: &mock.DocumentStore{
				ListAllFn: func(ctx context.Context) (map[string]localdocs.Metadata, error) {
					return map[string]localdocs.Metadata{
						"bbbb0002": {URL: "https://example.com/b"},
						"aaaa0001": {URL: "https://example.com/a"},
					}, nil
				},
				UpdateFn: func(ctx context.Context, id string) error {
					updated = append(updated, id)
					return nil
				},
			},
		}

		require.NoError(t, (&UpdateCmd{All: true}).Run(deps))
		assert.Equal(t, []string{"aaaa0001", "bbbb0002"}, updated)
	})

	t.Run("failed updates are tallied and surface as an error", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		deps := &Dependencies{
			Ctx:    context.Background(),
			Stdout: &stdout,
			Stderr: &stderr,
			Store: &mock.DocumentStore{
				UpdateFn: func(ctx context.Context, id string) error {
					if id == "aaaa0002" {
						return localdocs.Errorf(localdocs.EUNAVAILABLE, "fetch failed")
					}
					return nil
				},
			},
		}

		err := (&UpdateCmd{IDs: []string{"aaaa0001", "aaaa0002"}}).Run(deps)
		assert.Error(t, err)
		assert.Contains(t, stdout.String(), "Updated 1/2 documents.")
		assert.Contains(t, stderr.String(), "aaaa0002")
	})

	t.Run("no IDs is an error", func(t *testing.T) {
		t.Parallel()

		deps := &Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
		}
		assert.Error(t, (&UpdateCmd{}).Run(deps))
	})
}

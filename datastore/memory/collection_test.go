/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memory_test

import (
	"context"
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/suparena/memstore/datastore/memory"
	"github.com/suparena/memstore/errors"
	"github.com/suparena/memstore/keys"
)

type testEntity struct {
	ID   string
	Name string
}

func idKey(id string) keys.Tuple {
	return keys.NewTuple([]string{"Id"}, []any{id})
}

func TestCollection(t *testing.T) {
	ctx := context.Background()

	t.Run("BasicOperations", func(t *testing.T) {
		c := memory.New("TestEntity")

		entity := &testEntity{ID: "123", Name: "Test"}
		if err := c.Claim(ctx, idKey("123"), entity); err != nil {
			t.Fatalf("Claim failed: %v", err)
		}

		got, err := c.Get(ctx, idKey("123"))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != entity {
			t.Fatalf("Get returned a different instance: %+v", got)
		}

		_, err = c.Get(ctx, idKey("124"))
		if !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error, got: %v", err)
		}
	})

	t.Run("ClaimRejectsTakenKey", func(t *testing.T) {
		c := memory.New("TestEntity")
		first := &testEntity{ID: "1"}
		if err := c.Claim(ctx, idKey("1"), first); err != nil {
			t.Fatalf("Claim failed: %v", err)
		}
		err := c.Claim(ctx, idKey("1"), &testEntity{ID: "1"})
		if !errors.IsAlreadyExists(err) {
			t.Fatalf("Expected already exists error, got: %v", err)
		}
		got, _ := c.Get(ctx, idKey("1"))
		if got != first {
			t.Fatal("Losing claim must not overwrite the stored entity")
		}
	})

	t.Run("Replace", func(t *testing.T) {
		c := memory.New("TestEntity")
		_ = c.Claim(ctx, idKey("1"), &testEntity{ID: "1", Name: "old"})

		updated := &testEntity{ID: "1", Name: "new"}
		if err := c.Replace(ctx, idKey("1"), updated); err != nil {
			t.Fatalf("Replace failed: %v", err)
		}
		got, _ := c.Get(ctx, idKey("1"))
		if got != updated {
			t.Fatal("Replace did not swap the instance")
		}

		err := c.Replace(ctx, idKey("2"), &testEntity{ID: "2"})
		if !errors.IsTargetMissing(err) {
			t.Fatalf("Expected target missing error, got: %v", err)
		}
		if errors.IsNotFound(err) {
			t.Fatal("Target missing must stay distinct from not found")
		}
		if c.Count() != 1 {
			t.Fatalf("Replace of a missing key must not insert, count=%d", c.Count())
		}
	})

	t.Run("AllKeepsInsertionOrder", func(t *testing.T) {
		c := memory.New("TestEntity")
		for _, id := range []string{"3", "1", "2"} {
			_ = c.Claim(ctx, idKey(id), &testEntity{ID: id})
		}
		entries, err := c.All(ctx)
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		var ids []string
		for _, e := range entries {
			ids = append(ids, e.Entity.(*testEntity).ID)
		}
		if fmt.Sprint(ids) != "[3 1 2]" {
			t.Fatalf("Unexpected order: %v", ids)
		}
	})

	t.Run("CancelledContext", func(t *testing.T) {
		c := memory.New("TestEntity")
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if err := c.Claim(cctx, idKey("1"), &testEntity{}); err == nil {
			t.Fatal("Expected context error")
		}
		if c.Count() != 0 {
			t.Fatal("Cancelled claim must not insert")
		}
	})

	t.Run("ConcurrentClaims", func(t *testing.T) {
		c := memory.New("TestEntity")
		var g errgroup.Group
		wins := make(chan struct{}, 100)
		for i := 0; i < 100; i++ {
			g.Go(func() error {
				err := c.Claim(ctx, idKey("same"), &testEntity{ID: "same"})
				if err == nil {
					wins <- struct{}{}
					return nil
				}
				if !errors.IsAlreadyExists(err) {
					return err
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		close(wins)
		if len(wins) != 1 {
			t.Fatalf("Expected exactly one winning claim, got %d", len(wins))
		}
	})
}

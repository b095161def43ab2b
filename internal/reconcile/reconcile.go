// Package reconcile implements idempotent get-or-create for remote API
// resources.
//
// Remote identity providers own all state; a provisioning run only converges
// them. Every resource kind goes through the same sequence: list existing
// resources, apply one match predicate, create only when absent, and treat a
// create-time conflict as "already exists". Re-running a sequence must
// resolve the same resources without duplicating them.
package reconcile

import (
	"context"
	"fmt"
)

// EnsureOperation encapsulates list-match-create logic for one resource.
//
// Usage example:
//
//	project, created, err := (&reconcile.EnsureOperation[Project]{
//	    Name:         "SSO Applications",
//	    ResourceType: "project",
//	    List:         c.listProjects,
//	    Match:        func(p Project) bool { return p.Name == name },
//	    Create:       func(ctx context.Context) (Project, error) { ... },
//	    IsConflict:   apihttp.IsConflict,
//	}).Execute(ctx)
type EnsureOperation[T any] struct {
	// Name is the logical identity of the resource, used in error messages.
	Name string
	// ResourceType names the kind for error messages ("provider", "project").
	ResourceType string

	// List returns the existing resources of this kind.
	List func(ctx context.Context) ([]T, error)

	// Match is the single predicate deciding whether an existing resource is
	// the one being ensured (exact name, exact slug, or designation).
	Match func(T) bool

	// Create creates the resource. Called at most once per Execute.
	Create func(ctx context.Context) (T, error)

	// Update enforces configuration policy on an existing resource
	// (optional).
	Update func(ctx context.Context, existing T) (T, error)

	// IsConflict classifies a create error as "already exists" (optional).
	// Conflicting creates are resolved by re-listing.
	IsConflict func(error) bool
}

// Execute converges the resource and reports whether it was created by this
// call.
func (op *EnsureOperation[T]) Execute(ctx context.Context) (T, bool, error) {
	var zero T

	existing, found, err := op.find(ctx)
	if err != nil {
		return zero, false, err
	}

	if found {
		if op.Update != nil {
			updated, err := op.Update(ctx, existing)
			if err != nil {
				return zero, false, fmt.Errorf("failed to update %s %q: %w", op.ResourceType, op.Name, err)
			}
			return updated, false, nil
		}
		return existing, false, nil
	}

	created, err := op.Create(ctx)
	if err != nil {
		// A racing or earlier run may have created the resource already.
		if op.IsConflict != nil && op.IsConflict(err) {
			existing, found, findErr := op.find(ctx)
			if findErr != nil {
				return zero, false, findErr
			}
			if found {
				return existing, false, nil
			}
		}
		return zero, false, fmt.Errorf("failed to create %s %q: %w", op.ResourceType, op.Name, err)
	}

	return created, true, nil
}

func (op *EnsureOperation[T]) find(ctx context.Context) (T, bool, error) {
	var zero T

	resources, err := op.List(ctx)
	if err != nil {
		return zero, false, fmt.Errorf("failed to list %ss: %w", op.ResourceType, err)
	}

	for _, r := range resources {
		if op.Match(r) {
			return r, true, nil
		}
	}
	return zero, false, nil
}

// First returns the first resource matching the predicate, for lookups that
// never create (pre-existing flows, signing keys).
func First[T any](ctx context.Context, resourceType string, list func(context.Context) ([]T, error), match func(T) bool) (T, bool, error) {
	op := &EnsureOperation[T]{ResourceType: resourceType, List: list, Match: match}
	return op.find(ctx)
}

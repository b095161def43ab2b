package authentik

import (
	"context"
	"fmt"

	"github.com/imamik/idpctl/internal/reconcile"
)

// Flow designations assigned by the default Authentik blueprints.
const (
	DesignationAuthorization = "authorization"
	DesignationInvalidation  = "invalidation"
	DesignationEnrollment    = "enrollment"
	DesignationRecovery      = "recovery"
)

// DefaultAuthorizationFlowSlug is the slug of the stock authorization flow.
const DefaultAuthorizationFlowSlug = "default-authorization-flow"

const flowsPath = "/api/v3/flows/instances/"

// ListFlows returns all flow instances.
func (c *Client) ListFlows(ctx context.Context) ([]Flow, error) {
	return listResources[Flow](ctx, c.api, flowsPath)
}

// AuthorizationFlow resolves the flow providers authorize against: the
// default slug when present, otherwise any flow with the authorization
// designation.
func (c *Client) AuthorizationFlow(ctx context.Context) (Flow, error) {
	flows, err := c.ListFlows(ctx)
	if err != nil {
		return Flow{}, fmt.Errorf("failed to list flows: %w", err)
	}

	for _, f := range flows {
		if f.Slug == DefaultAuthorizationFlowSlug {
			return f, nil
		}
	}
	for _, f := range flows {
		if f.Designation == DesignationAuthorization {
			return f, nil
		}
	}
	return Flow{}, fmt.Errorf("no authorization flow found")
}

// FlowByDesignation returns the first flow carrying the given designation.
func (c *Client) FlowByDesignation(ctx context.Context, designation string) (Flow, bool, error) {
	return reconcile.First(ctx, "flow", c.ListFlows, func(f Flow) bool {
		return f.Designation == designation
	})
}

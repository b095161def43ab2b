package authentik

import (
	"context"

	"github.com/imamik/idpctl/internal/platform/apihttp"
	"github.com/imamik/idpctl/internal/reconcile"
)

const bindingsPath = "/api/v3/flows/bindings/"

// ListBindings returns the stage bindings of one flow.
func (c *Client) ListBindings(ctx context.Context, flowPK string) ([]FlowStageBinding, error) {
	return listResources[FlowStageBinding](ctx, c.api, bindingsPath+"?target="+flowPK)
}

// EnsureStageBinding binds a stage to a flow at the given order unless a
// binding for that stage already exists. Match policy: exact stage id within
// the target flow.
func (c *Client) EnsureStageBinding(ctx context.Context, flowPK, stagePK string, order int) (FlowStageBinding, bool, error) {
	return (&reconcile.EnsureOperation[FlowStageBinding]{
		Name:         stagePK,
		ResourceType: "flow stage binding",
		List: func(ctx context.Context) ([]FlowStageBinding, error) {
			return c.ListBindings(ctx, flowPK)
		},
		Match: func(b FlowStageBinding) bool {
			return b.Stage == stagePK
		},
		Create: func(ctx context.Context) (FlowStageBinding, error) {
			return createResource[FlowStageBinding](ctx, c.api, bindingsPath, map[string]any{
				"target":               flowPK,
				"stage":                stagePK,
				"order":                order,
				"evaluate_on_plan":     true,
				"re_evaluate_policies": false,
			})
		},
		IsConflict: apihttp.IsConflict,
	}).Execute(ctx)
}

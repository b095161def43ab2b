package authentik

import (
	"context"

	"github.com/imamik/idpctl/internal/platform/apihttp"
	"github.com/imamik/idpctl/internal/reconcile"
)

const applicationsPath = "/api/v3/core/applications/"

// ApplicationOpts holds the parameters for an application entry.
type ApplicationOpts struct {
	Name      string
	Slug      string
	Provider  int
	LaunchURL string
}

type applicationCreate struct {
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Provider      int    `json:"provider"`
	MetaLaunchURL string `json:"meta_launch_url"`
}

// ListApplications returns all applications.
func (c *Client) ListApplications(ctx context.Context) ([]Application, error) {
	return listResources[Application](ctx, c.api, applicationsPath)
}

// EnsureApplication converges the application. Match policy: exact slug,
// which is the unique key Authentik itself enforces.
func (c *Client) EnsureApplication(ctx context.Context, opts ApplicationOpts) (Application, bool, error) {
	c.log.Infof("Ensuring application %q...", opts.Slug)

	return (&reconcile.EnsureOperation[Application]{
		Name:         opts.Slug,
		ResourceType: "application",
		List:         c.ListApplications,
		Match: func(a Application) bool {
			return a.Slug == opts.Slug
		},
		Create: func(ctx context.Context) (Application, error) {
			return createResource[Application](ctx, c.api, applicationsPath, applicationCreate{
				Name:          opts.Name,
				Slug:          opts.Slug,
				Provider:      opts.Provider,
				MetaLaunchURL: opts.LaunchURL,
			})
		},
		IsConflict: apihttp.IsConflict,
	}).Execute(ctx)
}

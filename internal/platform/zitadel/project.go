package zitadel

import (
	"context"

	"github.com/imamik/idpctl/internal/platform/apihttp"
	"github.com/imamik/idpctl/internal/reconcile"
)

// DefaultProjectName is the shared project all provisioned OIDC apps live
// under.
const DefaultProjectName = "SSO Applications"

const projectsPath = "/management/v1/projects"

// ListProjects returns all projects of the organization.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	return searchResources[Project](ctx, c.api, projectsPath+"/_search", nil)
}

// EnsureProject converges a project. Match policy: exact name.
func (c *Client) EnsureProject(ctx context.Context, name string) (Project, bool, error) {
	c.log.Infof("Ensuring project %q...", name)

	return (&reconcile.EnsureOperation[Project]{
		Name:         name,
		ResourceType: "project",
		List:         c.ListProjects,
		Match: func(p Project) bool {
			return p.Name == name
		},
		Create: func(ctx context.Context) (Project, error) {
			// The create response carries the id only.
			created, err := createResource[Project](ctx, c.api, projectsPath, map[string]any{
				"name": name,
			})
			if err != nil {
				return Project{}, err
			}
			created.Name = name
			return created, nil
		},
		IsConflict: apihttp.IsConflict,
	}).Execute(ctx)
}

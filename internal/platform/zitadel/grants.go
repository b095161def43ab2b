package zitadel

import (
	"context"
	"fmt"
	"net/http"
)

// GrantProjectOwner grants the PROJECT_OWNER role on a project to a user.
// A non-2xx answer is reported but not fatal: the grant usually already
// exists on reruns and the API has no idempotent variant.
func (c *Client) GrantProjectOwner(ctx context.Context, projectID, userID string) bool {
	c.log.Infof("Granting PROJECT_OWNER on project %s to user %s...", projectID, userID)

	resp := c.api.Do(ctx, http.MethodPost,
		fmt.Sprintf("%s/%s/roles/_bulk/set", projectsPath, projectID), map[string]any{
			"grants": []map[string]any{
				{
					"userId":   userID,
					"roleKeys": []string{"PROJECT_OWNER"},
				},
			},
		})
	if !resp.OK() {
		c.log.Warnf("Permission grant returned status %d (may already exist)", resp.Status)
		return false
	}
	return true
}

package blossom

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// ErrVolunteerNotFound is returned when no volunteer matches a username.
var ErrVolunteerNotFound = errors.New("volunteer not found")

// FindVolunteer looks up a volunteer by their exact username.
func (c *Client) FindVolunteer(ctx context.Context, username string) (*Volunteer, error) {
	query := make(url.Values)
	query.Set("username", username)

	var page volunteerPage
	if err := c.get(ctx, "/volunteer/", query, &page); err != nil {
		return nil, fmt.Errorf("looking up volunteer %q: %w", username, err)
	}
	if len(page.Results) == 0 {
		return nil, fmt.Errorf("volunteer %q: %w", username, ErrVolunteerNotFound)
	}
	return &page.Results[0], nil
}

package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/tournament-platform/models"
)

var (
	actionViewPendingApplication = models.DashboardAction{Label: "View Pending Organizer Application", Href: "/pending-application"}
	actionApplyForOrganizer      = models.DashboardAction{Label: "Apply to Become an Organizer", Href: "/organizer-application"}
)

type DashboardService interface {
	GetDashboard(ctx context.Context, userID int) (*models.Dashboard, error)
}

type dashboardService struct {
	identity     IdentityService
	applications OrganizerApplicationService
}

func NewDashboardService(identity IdentityService, applications OrganizerApplicationService) DashboardService {
	return &dashboardService{
		identity:     identity,
		applications: applications,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, userID int) (*models.Dashboard, error) {
	if userID <= 0 {
		return nil, ErrUnauthenticated
	}

	var user *models.User
	var apps []*models.OrganizerApplication

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.identity.SelectUserProfile(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		apps, err = s.applications.ListOwnApplications(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dashboard := &models.Dashboard{
		User:            user,
		RoleDescription: user.Role.Description(),
	}
	for _, app := range apps {
		if app.Status == models.ApplicationPending {
			dashboard.PendingApplication = app
			break
		}
	}

	// Заявку может подать только гость.
	if user.Role == models.RoleGuest {
		action := actionApplyForOrganizer
		if dashboard.PendingApplication != nil {
			action = actionViewPendingApplication
		}
		dashboard.Action = &action
	}

	return dashboard, nil
}

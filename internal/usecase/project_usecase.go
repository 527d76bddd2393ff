package usecase

import (
	"context"
	"errors"
	"strings"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"
)

var (
	ErrInvalidProjectID     = errors.New("invalid project id")
	ErrProjectNotFound      = errors.New("project not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// ProjectView is a project with its commerce references resolved. The
// references are metadata, not foreign keys: when one dangles, the matching
// note explains it and the view still renders.
type ProjectView struct {
	Project          entities.Project
	Order            *entities.Order
	OrderNote        string
	Subscription     *entities.Subscription
	SubscriptionNote string
}

// IProjectUseCase exposes read access to projects, orders and subscriptions.

type IProjectUseCase interface {
	GetByID(ctx context.Context, id string) (ProjectView, error)
	GetOrder(ctx context.Context, id string) (entities.Order, error)
	GetSubscription(ctx context.Context, id string) (entities.Subscription, error)
}

type ProjectUseCase struct {
	projects interfaces.IProjectRepository
	orders   interfaces.IOrderRepository
	subs     interfaces.ISubscriptionRepository
	log      interfaces.IAuditLogger
}

var _ IProjectUseCase = (*ProjectUseCase)(nil)

func NewProjectUseCase(projects interfaces.IProjectRepository, orders interfaces.IOrderRepository, subs interfaces.ISubscriptionRepository, log interfaces.IAuditLogger) *ProjectUseCase {
	if log == nil {
		log = interfaces.NopAuditLogger{}
	}
	return &ProjectUseCase{projects: projects, orders: orders, subs: subs, log: log}
}

func (u *ProjectUseCase) GetByID(ctx context.Context, id string) (ProjectView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ProjectView{}, ErrInvalidProjectID
	}
	project, err := u.projects.GetByID(ctx, id)
	if err != nil {
		return ProjectView{}, err
	}
	if project.ID == "" {
		return ProjectView{}, ErrProjectNotFound
	}

	view := ProjectView{Project: project}

	if orderID := project.Meta[entities.MetaOrderID]; orderID != "" {
		order, err := u.orders.GetByID(ctx, orderID)
		switch {
		case err != nil:
			return ProjectView{}, err
		case order.ID == "":
			u.log.Warn(interfaces.ComponentGeneral, "project %s references missing order %s", id, orderID)
			view.OrderNote = "parent order not found"
		default:
			view.Order = &order
		}
	}

	if subID := project.Meta[entities.MetaSubscriptionID]; subID != "" {
		sub, err := u.subs.GetByID(ctx, subID)
		switch {
		case err != nil:
			return ProjectView{}, err
		case sub.ID == "":
			u.log.Warn(interfaces.ComponentGeneral, "project %s references missing subscription %s", id, subID)
			view.SubscriptionNote = "subscription not found"
		default:
			view.Subscription = &sub
		}
	}

	return view, nil
}

func (u *ProjectUseCase) GetOrder(ctx context.Context, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	o, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *ProjectUseCase) GetSubscription(ctx context.Context, id string) (entities.Subscription, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Subscription{}, ErrSubscriptionNotFound
	}
	s, err := u.subs.GetByID(ctx, id)
	if err != nil {
		return entities.Subscription{}, err
	}
	if s.ID == "" {
		return entities.Subscription{}, ErrSubscriptionNotFound
	}
	return s, nil
}

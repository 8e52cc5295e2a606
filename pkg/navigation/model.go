package navigation

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/pkg/client"
	"golang.org/x/sync/errgroup"
)

const noHighlight = -1

type Model struct {
	api       API
	selection Selection
	items     []Item
	listedFor Selection
	highlight int
	dirty     bool
}

func New(api API) *Model {
	return &Model{api: api, highlight: noHighlight, dirty: true}
}

func (m *Model) State() State {
	switch {
	case m.selection.UserId == 0:
		return LoggedOut
	case m.selection.BudgetId == 0:
		return BudgetSelection
	case m.selection.CategoryId != 0:
		return CategoryBrowsing
	case m.selection.GroupId != 0:
		return GroupBrowsing
	}
	return Home
}

func (m *Model) Selection() Selection { return m.selection }

func (m *Model) Dirty() bool { return m.dirty }

// Items returns the cached listing. It is stale while Dirty reports true.
func (m *Model) Items() []Item { return m.items }

// HighlightIndex returns the highlighted position, or false when unset.
// Nothing is highlighted while the cached listing belongs to another level.
func (m *Model) HighlightIndex() (int, bool) {
	if !m.listingCurrent() || m.highlight == noHighlight {
		return noHighlight, false
	}
	return m.highlight, true
}

// Highlighted returns the highlighted entry of the current level's listing.
func (m *Model) Highlighted() (Item, bool) {
	index, ok := m.HighlightIndex()
	if !ok || index >= len(m.items) {
		return Item{}, false
	}
	return m.items[index], true
}

func (m *Model) listingCurrent() bool {
	return m.listedFor == m.selection
}

// Invalidate forces the next RefreshListing to fetch.
func (m *Model) Invalidate() { m.dirty = true }

func (m *Model) HighlightDown() {
	if len(m.items) == 0 || !m.listingCurrent() {
		return
	}
	if m.highlight == noHighlight {
		m.highlight = 0
		return
	}
	m.highlight = (m.highlight + 1) % len(m.items)
}

func (m *Model) HighlightUp() {
	if len(m.items) == 0 || !m.listingCurrent() {
		return
	}
	if m.highlight == noHighlight {
		m.highlight = len(m.items) - 1
		return
	}
	m.highlight = (m.highlight - 1 + len(m.items)) % len(m.items)
}

// Login enters the given user after checking that it exists.
func (m *Model) Login(ctx context.Context, userId int) error {
	u, err := m.api.GetUser(ctx, userId)
	if err != nil {
		return err
	}
	m.selection = Selection{UserId: u.Id, UserName: u.Username}
	m.dirty = true
	return nil
}

// SelectHighlighted enters the highlighted entry, advancing one level.
// Transactions have no level below them and are left as they are.
func (m *Model) SelectHighlighted() error {
	item, ok := m.Highlighted()
	if !ok {
		return ErrNothingHighlighted
	}
	switch item.Kind {
	case KindUser:
		m.selection = Selection{UserId: item.Id, UserName: item.Draft.Name}
	case KindBudget:
		m.selection.BudgetId, m.selection.BudgetName = item.Id, item.Draft.Name
	case KindGroup:
		m.selection.GroupId, m.selection.GroupName = item.Id, item.Draft.Name
	case KindCategory:
		m.selection.CategoryId, m.selection.CategoryName = item.Id, item.Draft.Name
	case KindTransaction:
		return nil
	default:
		return fmt.Errorf("unknown entry kind %q", item.Kind)
	}
	m.dirty = true
	return nil
}

// Back leaves the innermost selected level. It reports false when logged out.
func (m *Model) Back() bool {
	switch {
	case m.selection.CategoryId != 0:
		m.selection.CategoryId, m.selection.CategoryName = 0, ""
	case m.selection.GroupId != 0:
		m.selection.GroupId, m.selection.GroupName = 0, ""
	case m.selection.BudgetId != 0:
		m.selection.BudgetId, m.selection.BudgetName = 0, ""
	case m.selection.UserId != 0:
		m.selection = Selection{}
	default:
		return false
	}
	m.dirty = true
	return true
}

// RefreshListing fetches the listing of the current level when it is dirty.
// The highlight is kept while the level stays the same.
func (m *Model) RefreshListing(ctx context.Context) error {
	if !m.dirty {
		return nil
	}
	items, err := m.fetch(ctx)
	if err != nil {
		log.Debugf("refreshing %s listing failed: %v", m.State(), err)
		return err
	}
	if m.listedFor != m.selection || len(items) == 0 {
		m.highlight = noHighlight
	} else if m.highlight >= len(items) {
		m.highlight = len(items) - 1
	}
	m.items = items
	m.listedFor = m.selection
	m.dirty = false
	return nil
}

func (m *Model) fetch(ctx context.Context) ([]Item, error) {
	s := m.selection
	switch m.State() {
	case LoggedOut:
		users, err := m.api.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]Item, 0, len(users))
		for _, u := range users {
			items = append(items, userItem(u))
		}
		return items, nil
	case BudgetSelection:
		budgets, err := m.api.ListBudgets(ctx, s.UserId)
		if err != nil {
			return nil, err
		}
		items := make([]Item, 0, len(budgets))
		for _, b := range budgets {
			items = append(items, Item{Kind: KindBudget, Id: b.Id, Label: b.Name, Draft: Draft{Name: b.Name}})
		}
		return items, nil
	case Home:
		return m.fetchHome(ctx)
	case GroupBrowsing:
		categories, err := m.api.ListGroupCategories(ctx, s.UserId, s.BudgetId, s.GroupId, true)
		if err != nil {
			return nil, err
		}
		items := make([]Item, 0, len(categories))
		for _, c := range categories {
			items = append(items, categoryItem(c, 0))
		}
		return items, nil
	case CategoryBrowsing:
		transactions, err := m.api.ListTransactions(ctx, s.UserId, s.BudgetId, s.CategoryId)
		if err != nil {
			return nil, err
		}
		items := make([]Item, 0, len(transactions))
		for _, t := range transactions {
			items = append(items, Item{
				Kind:  KindTransaction,
				Id:    t.Id,
				Label: fmt.Sprintf("%s  %s  %s", t.Name, formatSeconds(t.Period), t.DateTime.Local().Format("2006-01-02 15:04")),
				Draft: Draft{Name: t.Name, Seconds: t.Period},
			})
		}
		return items, nil
	}
	return nil, fmt.Errorf("no listing for state %s", m.State())
}

// fetchHome lists ungrouped categories first, then every group followed by its categories.
func (m *Model) fetchHome(ctx context.Context) ([]Item, error) {
	s := m.selection
	var groups []client.Group
	var categories []client.Category
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		groups, err = m.api.ListGroups(gctx, s.UserId, s.BudgetId)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = m.api.ListCategories(gctx, s.UserId, s.BudgetId, true)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	listed := make(map[int]bool, len(groups))
	for _, group := range groups {
		listed[group.Id] = true
	}
	// A category of a group missing from the group listing is shown ungrouped.
	byGroup := make(map[int][]client.Category)
	items := make([]Item, 0, len(groups)+len(categories))
	for _, c := range categories {
		if c.GroupId == nil || !listed[*c.GroupId] {
			items = append(items, categoryItem(c, 0))
			continue
		}
		byGroup[*c.GroupId] = append(byGroup[*c.GroupId], c)
	}
	for _, group := range groups {
		items = append(items, Item{Kind: KindGroup, Id: group.Id, Label: group.Name, Draft: Draft{Name: group.Name}})
		for _, c := range byGroup[group.Id] {
			items = append(items, categoryItem(c, 1))
		}
	}
	return items, nil
}

func userItem(u client.User) Item {
	return Item{
		Kind:  KindUser,
		Id:    u.Id,
		Label: fmt.Sprintf("%s <%s>", u.Username, u.Email),
		Draft: Draft{Name: u.Username, Email: u.Email},
	}
}

func categoryItem(c client.Category, depth int) Item {
	label := fmt.Sprintf("%s  %s", c.Name, formatSeconds(c.TimeAllocated))
	if c.TimeUsed != nil {
		label = fmt.Sprintf("%s  %s / %s", c.Name, formatSeconds(*c.TimeUsed), formatSeconds(c.TimeAllocated))
	}
	return Item{
		Kind:  KindCategory,
		Id:    c.Id,
		Label: label,
		Depth: depth,
		Draft: Draft{Name: c.Name, Seconds: c.TimeAllocated, GroupId: c.GroupId},
	}
}

// CreateKind is the kind of entry created at the current level by default.
func (m *Model) CreateKind() Kind {
	switch m.State() {
	case LoggedOut:
		return KindUser
	case BudgetSelection:
		return KindBudget
	case CategoryBrowsing:
		return KindTransaction
	}
	return KindCategory
}

// NewDraft returns the initial form content for creating an entry of kind.
// Categories created while browsing a group default to that group.
func (m *Model) NewDraft(kind Kind) Draft {
	if kind == KindCategory && m.selection.GroupId != 0 {
		groupId := m.selection.GroupId
		return Draft{GroupId: &groupId}
	}
	return Draft{}
}

// Create adds an entry of kind below the current selection.
func (m *Model) Create(ctx context.Context, kind Kind, d Draft) error {
	s := m.selection
	var err error
	switch kind {
	case KindUser:
		_, err = m.api.CreateUser(ctx, client.UserInput{Username: d.Name, Email: d.Email})
	case KindBudget:
		if s.UserId == 0 {
			return ErrNotAvailable
		}
		_, err = m.api.CreateBudget(ctx, s.UserId, client.BudgetInput{Name: d.Name})
	case KindGroup:
		if s.BudgetId == 0 {
			return ErrNotAvailable
		}
		_, err = m.api.CreateGroup(ctx, s.UserId, s.BudgetId, client.GroupInput{Name: d.Name})
	case KindCategory:
		if s.BudgetId == 0 {
			return ErrNotAvailable
		}
		_, err = m.api.CreateCategory(ctx, s.UserId, s.BudgetId, categoryInput(d))
	case KindTransaction:
		if s.CategoryId == 0 {
			return ErrNotAvailable
		}
		_, err = m.api.CreateTransaction(ctx, s.UserId, s.BudgetId, s.CategoryId,
			client.TransactionInput{Name: d.Name, Period: d.Seconds})
	default:
		return fmt.Errorf("unknown entry kind %q", kind)
	}
	if err != nil {
		return err
	}
	m.dirty = true
	return nil
}

// EditHighlighted replaces the highlighted entry's values. The selection is unchanged.
func (m *Model) EditHighlighted(ctx context.Context, d Draft) error {
	item, ok := m.Highlighted()
	if !ok {
		return ErrNothingHighlighted
	}
	s := m.selection
	var err error
	switch item.Kind {
	case KindUser:
		_, err = m.api.UpdateUser(ctx, item.Id, client.UserInput{Username: d.Name, Email: d.Email})
	case KindBudget:
		_, err = m.api.UpdateBudget(ctx, s.UserId, item.Id, client.BudgetInput{Name: d.Name})
	case KindGroup:
		_, err = m.api.UpdateGroup(ctx, s.UserId, s.BudgetId, item.Id, client.GroupInput{Name: d.Name})
	case KindCategory:
		_, err = m.api.UpdateCategory(ctx, s.UserId, s.BudgetId, item.Id, categoryInput(d))
	case KindTransaction:
		_, err = m.api.UpdateTransaction(ctx, s.UserId, s.BudgetId, s.CategoryId, item.Id,
			client.TransactionInput{Name: d.Name, Period: d.Seconds})
	default:
		return fmt.Errorf("unknown entry kind %q", item.Kind)
	}
	if err != nil {
		return err
	}
	m.dirty = true
	return nil
}

// DeleteHighlighted deletes the highlighted entry and everything it owns.
func (m *Model) DeleteHighlighted(ctx context.Context) error {
	item, ok := m.Highlighted()
	if !ok {
		return ErrNothingHighlighted
	}
	s := m.selection
	var err error
	switch item.Kind {
	case KindUser:
		err = m.api.DeleteUser(ctx, item.Id)
	case KindBudget:
		err = m.api.DeleteBudget(ctx, s.UserId, item.Id)
	case KindGroup:
		err = m.api.DeleteGroup(ctx, s.UserId, s.BudgetId, item.Id)
	case KindCategory:
		err = m.api.DeleteCategory(ctx, s.UserId, s.BudgetId, item.Id)
	case KindTransaction:
		err = m.api.DeleteTransaction(ctx, s.UserId, s.BudgetId, s.CategoryId, item.Id)
	default:
		return fmt.Errorf("unknown entry kind %q", item.Kind)
	}
	if err != nil {
		return err
	}
	m.dirty = true
	return nil
}

func categoryInput(d Draft) client.CategoryInput {
	return client.CategoryInput{Name: d.Name, TimeAllocated: d.Seconds, GroupId: d.GroupId}
}

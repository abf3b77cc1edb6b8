package console

import (
	"context"
	"errors"
	"strings"

	"github.com/canulcua123-source/vista-boss/internal/domain/model"
)

// Badge is the visual emphasis of a role in the table. Admin stays the
// strongest variant, everything unrecognized falls back to outline.
type Badge string

const (
	BadgeDanger    Badge = "danger"
	BadgeSecondary Badge = "secondary"
	BadgeOutline   Badge = "outline"
)

func RoleBadge(role string) Badge {
	switch role {
	case model.RoleAdmin:
		return BadgeDanger
	case model.RoleMerchant:
		return BadgeSecondary
	default:
		return BadgeOutline
	}
}

// Row is one rendered table line.
type Row struct {
	User      model.User
	Badge     Badge
	CanDelete bool
}

// Delete failure messages, chosen by the status the API reported.
const (
	msgDeleteRefused   = "The server refused the deletion; the user may have related records or be a protected account"
	msgDeleteForbidden = "You do not have permission to delete this user"
	msgDeleteNotFound  = "User not found; the list may be out of date"
	msgDeleteFailed    = "Could not delete the user"
	msgLoadFailed      = "Could not load the user list"
)

// ListView owns the canonical screen state: the user collection, the loading
// flag, the pending-delete id and the creation-dialog flag. All user actions
// arrive as method calls, network results are folded back into the same
// state before the call returns.
type ListView struct {
	api    API
	notify Notifier

	users         []model.User
	loading       bool
	pendingDelete int64 // 0 means no confirmation is pending
	deleting      bool
	formOpen      bool
}

func NewListView(api API, notify Notifier) *ListView {
	return &ListView{api: api, notify: notify, loading: true}
}

// Activate fetches the full collection. On failure the current collection is
// kept and an error notification raised; loading is cleared either way so
// the screen never hangs on the skeleton.
func (v *ListView) Activate(ctx context.Context) {
	v.loading = true
	users, err := v.api.GetUsers(ctx)
	v.loading = false
	if err != nil {
		v.notify.Error(msgLoadFailed)
		return
	}
	v.users = users
}

// Loading reports whether the skeleton layout should render instead of the
// table.
func (v *ListView) Loading() bool {
	return v.loading
}

func (v *ListView) Users() []model.User {
	return v.users
}

// Rows maps the collection to render rows. The delete affordance is
// disabled, not hidden, for admin accounts.
func (v *ListView) Rows() []Row {
	rows := make([]Row, 0, len(v.users))
	for _, u := range v.users {
		rows = append(rows, Row{
			User:      u,
			Badge:     RoleBadge(u.Role),
			CanDelete: !u.IsAdmin(),
		})
	}
	return rows
}

// RequestDelete records the id pending confirmation. It refuses admin rows
// and ids not present in the collection, and reports whether the
// confirmation dialog should open.
func (v *ListView) RequestDelete(id int64) bool {
	for _, u := range v.users {
		if u.ID != id {
			continue
		}
		if u.IsAdmin() {
			return false
		}
		v.pendingDelete = id
		return true
	}
	return false
}

// PendingDelete returns the id awaiting confirmation, if any. Its presence
// gates the confirmation dialog.
func (v *ListView) PendingDelete() (int64, bool) {
	return v.pendingDelete, v.pendingDelete != 0
}

// ConfirmDelete issues the delete for the recorded id. The pending id is
// cleared on every outcome; only success re-fetches the collection.
func (v *ListView) ConfirmDelete(ctx context.Context) {
	if v.pendingDelete == 0 || v.deleting {
		return
	}
	id := v.pendingDelete
	v.deleting = true
	err := v.api.DeleteUser(ctx, id)
	v.deleting = false
	v.pendingDelete = 0

	if err != nil {
		v.notify.Error(classifyDeleteError(err))
		return
	}
	v.notify.Success("User deleted")
	v.Activate(ctx)
}

// CancelDelete clears the pending id without issuing a request.
func (v *ListView) CancelDelete() {
	v.pendingDelete = 0
}

// OpenForm opens the creation dialog and returns the transient form child.
// The form reports completion back through HandleUserAdded.
func (v *ListView) OpenForm() *UserForm {
	v.formOpen = true
	return NewUserForm(v.api, v.notify, v.HandleUserAdded)
}

func (v *ListView) FormOpen() bool {
	return v.formOpen
}

func (v *ListView) CloseForm() {
	v.formOpen = false
}

// HandleUserAdded is the owner's side of the form callback: close the dialog
// and re-fetch the collection.
func (v *ListView) HandleUserAdded(ctx context.Context) {
	v.formOpen = false
	v.Activate(ctx)
}

// classifyDeleteError picks the user-facing message for a failed deletion.
// The structured status is preferred; wrapped or opaque errors fall back to
// scanning the message for the status digits, which is the contract the
// original API exposed.
func classifyDeleteError(err error) string {
	status := 0
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		status = apiErr.Status
	} else {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "500"):
			status = 500
		case strings.Contains(msg, "403"):
			status = 403
		case strings.Contains(msg, "404"):
			status = 404
		}
	}

	switch status {
	case 500:
		return msgDeleteRefused
	case 403:
		return msgDeleteForbidden
	case 404:
		return msgDeleteNotFound
	default:
		return msgDeleteFailed
	}
}

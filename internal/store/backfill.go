package store

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/models"
)

// ensureDefaults repairs stored data in place: it seeds the administrator
// profile and auth user, fills in missing profile settings and back-dates
// completed_at on finished tasks. Only changed keys are written, all in one
// call. The caller holds s.mu.
func (s *Store) ensureDefaults(ctx context.Context) {
	profiles, perr := s.readRecords(ctx, Profiles)
	users, uerr := s.readUsers(ctx)
	tasks, terr := s.readRecords(ctx, Tasks)

	changes := make(map[string]any)

	// A failed read must not be mistaken for an empty collection and
	// overwritten with seed data.
	if perr == nil && uerr == nil {
		seed := adminSeed{
			now:      s.timestamp(),
			id:       common.MasterIDPrefix + "-" + strconv.FormatInt(s.now().UnixMilli(), 10),
			password: s.masterPassword,
		}
		var pChanged, uChanged bool
		profiles, users, pChanged, uChanged = backfillProfiles(profiles, users, seed)
		if pChanged {
			changes[common.StorageKeyProfiles] = profiles
		}
		if uChanged {
			changes[common.StorageKeyUsers] = users
		}
	}

	if terr == nil {
		var tChanged bool
		tasks, tChanged = backfillTasks(tasks)
		if tChanged {
			changes[common.StorageKeyTasks] = tasks
		}
	}

	if len(changes) == 0 {
		return
	}
	if err := s.write(ctx, changes); err != nil {
		return
	}
	s.logger.Debug(ctx, "stored data repaired", "keys", len(changes))
}

type adminSeed struct {
	now      string
	id       string
	password string
}

// backfillProfiles is the pure part of the profile repair. It returns the
// repaired slices and which of them changed. Applying it twice changes
// nothing the second time.
func backfillProfiles(profiles []Record, users []models.User, seed adminSeed) ([]Record, []models.User, bool, bool) {
	var pChanged, uChanged bool

	hasProfile := false
	for _, p := range profiles {
		if p.String("username") == common.MasterUsername {
			hasProfile = true
			break
		}
	}

	masterUser := -1
	for i, u := range users {
		if u.Email == common.MasterEmail {
			masterUser = i
			break
		}
	}

	if !hasProfile {
		id := seed.id
		if masterUser >= 0 {
			id = users[masterUser].ID
		}
		profiles = append(profiles, Record{
			"id":         id,
			"username":   common.MasterUsername,
			"email":      common.MasterEmail,
			"role":       string(models.RoleAdmin),
			"status":     string(models.ProfileStatusActive),
			"created_at": seed.now,
		})
		pChanged = true
	}

	if masterUser < 0 {
		id := seed.id
		for _, p := range profiles {
			if p.String("username") == common.MasterUsername {
				id = p.String("id")
				break
			}
		}
		users = append(users, models.User{
			ID:           id,
			Email:        common.MasterEmail,
			Password:     seed.password,
			UserMetadata: models.UserMetadata{Username: common.MasterUsername},
		})
		uChanged = true
	}

	for i, p := range profiles {
		if v, ok := p["settings"]; ok && v != nil {
			continue
		}
		repaired := p.Clone()
		repaired["settings"] = defaultSettingsRecord()
		profiles[i] = repaired
		pChanged = true
	}

	return profiles, users, pChanged, uChanged
}

// backfillTasks gives every done task without completed_at its created_at.
func backfillTasks(tasks []Record) ([]Record, bool) {
	changed := false
	for i, t := range tasks {
		if t.String("status") != string(models.TaskStatusDone) {
			continue
		}
		if v, ok := t["completed_at"]; ok && v != nil && v != "" {
			continue
		}
		created, ok := t["created_at"]
		if !ok || created == nil {
			continue
		}
		repaired := t.Clone()
		repaired["completed_at"] = created
		tasks[i] = repaired
		changed = true
	}
	return tasks, changed
}

func defaultSettingsRecord() map[string]any {
	d := models.DefaultSettings()
	return map[string]any{
		"notify_assignment": d.NotifyAssignment,
		"notify_completion": d.NotifyCompletion,
		"notify_due_date":   d.NotifyDueDate,
	}
}

package db

import (
	"encoding/json"
	"errors"

	"drawing-bot/internal/raffle"

	"github.com/jackc/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Gateway is the durable mirror of the raffle core. Every write lands in one
// transaction together with its audit event, so memory and storage cannot
// drift apart on partial failure.
type Gateway struct {
	conn *gorm.DB
}

func NewGateway(conn *gorm.DB) *Gateway {
	return &Gateway{conn: conn}
}

// EventPayload is the audit record attached to every durable write.
type EventPayload struct {
	Drawing       string   `json:"drawing,omitempty"`
	State         string   `json:"state,omitempty"`
	EntrantNumber int      `json:"entrant_number,omitempty"`
	Users         []string `json:"users,omitempty"`
	EliminatedBy  string   `json:"eliminated_by,omitempty"`
	Winner        int      `json:"winner,omitempty"`
	RoleID        string   `json:"role_id,omitempty"`
}

func (g *Gateway) SaveDrawing(d *raffle.Drawing) error {
	record := Drawing{
		Community: d.Community,
		Name:      d.Name,
		State:     d.State,
		Deadline:  d.Deadline,
	}
	err := g.conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			if isUniqueViolation(err) {
				return raffle.ErrDuplicateName
			}
			return err
		}
		return recordEvent(tx, d.Community, &record.ID, "drawing_created", EventPayload{
			Drawing: d.Name,
			State:   d.State,
		})
	})
	if err != nil {
		return err
	}
	d.DBID = record.ID
	return nil
}

func (g *Gateway) UpdateDrawing(d *raffle.Drawing) error {
	updates := map[string]any{
		"state":    d.State,
		"deadline": d.Deadline,
		"winner":   d.Winner,
	}
	return g.conn.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Drawing{}).Where("id = ?", d.DBID).Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return raffle.ErrNotFound
		}
		return recordEvent(tx, d.Community, &d.DBID, "drawing_updated", EventPayload{
			Drawing: d.Name,
			State:   d.State,
			Winner:  d.Winner,
		})
	})
}

func (g *Gateway) LoadDrawing(community, name string) (*raffle.Drawing, error) {
	var record Drawing
	err := g.preloaded().
		Where("community = ? AND lower(name) = lower(?) AND state <> ?", community, name, raffle.StateArchived).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, raffle.ErrNotFound
		}
		return nil, err
	}
	return toRaffle(&record), nil
}

func (g *Gateway) ListDrawings(community string, includeArchived bool) ([]*raffle.Drawing, error) {
	query := g.preloaded().Where("community = ?", community)
	if !includeArchived {
		query = query.Where("state <> ?", raffle.StateArchived)
	}
	var records []Drawing
	if err := query.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return toRaffleList(records), nil
}

func (g *Gateway) LoadAll() ([]*raffle.Drawing, error) {
	var records []Drawing
	if err := g.preloaded().Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return toRaffleList(records), nil
}

func (g *Gateway) SaveEntry(d *raffle.Drawing, e *raffle.Entry) error {
	record := Entry{
		DrawingID:     d.DBID,
		EntrantNumber: e.EntrantNumber,
	}
	err := g.conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		for _, user := range e.Users {
			if err := tx.Create(&EntryUser{EntryID: record.ID, UserID: user}).Error; err != nil {
				return err
			}
		}
		return recordEvent(tx, d.Community, &d.DBID, "entry_added", EventPayload{
			Drawing:       d.Name,
			EntrantNumber: e.EntrantNumber,
			Users:         e.Users,
		})
	})
	if err != nil {
		return err
	}
	e.DBID = record.ID
	return nil
}

func (g *Gateway) MarkEliminated(d *raffle.Drawing, e *raffle.Entry) error {
	updates := map[string]any{
		"eliminated":    true,
		"eliminated_at": e.EliminatedAt,
		"eliminated_by": e.EliminatedBy,
	}
	return g.conn.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Entry{}).
			Where("drawing_id = ? AND entrant_number = ?", d.DBID, e.EntrantNumber).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return raffle.ErrNotFound
		}
		return recordEvent(tx, d.Community, &d.DBID, "entry_eliminated", EventPayload{
			Drawing:       d.Name,
			EntrantNumber: e.EntrantNumber,
			EliminatedBy:  e.EliminatedBy,
		})
	})
}

func (g *Gateway) SaveAdminRole(community, roleID string) error {
	record := AdminRole{
		Community: community,
		RoleID:    roleID,
	}
	return g.conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "community"}},
			DoUpdates: clause.AssignmentColumns([]string{"role_id", "updated_at"}),
		}).Create(&record).Error; err != nil {
			return err
		}
		return recordEvent(tx, community, nil, "admin_role_set", EventPayload{
			RoleID: roleID,
		})
	})
}

func (g *Gateway) LoadAdminRole(community string) (string, error) {
	var record AdminRole
	if err := g.conn.Where("community = ?", community).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", raffle.ErrNotFound
		}
		return "", err
	}
	return record.RoleID, nil
}

func (g *Gateway) preloaded() *gorm.DB {
	return g.conn.
		Preload("Entries", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("entrant_number")
		}).
		Preload("Entries.Users")
}

func recordEvent(tx *gorm.DB, community string, drawingID *uint, eventType string, payload EventPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := Event{
		Community: community,
		DrawingID: drawingID,
		Type:      eventType,
		Payload:   datatypes.JSON(data),
	}
	return tx.Create(&event).Error
}

func toRaffle(record *Drawing) *raffle.Drawing {
	d := &raffle.Drawing{
		Community: record.Community,
		Name:      record.Name,
		State:     record.State,
		CreatedAt: record.CreatedAt,
		Deadline:  record.Deadline,
		Winner:    record.Winner,
		DBID:      record.ID,
	}
	for _, entry := range record.Entries {
		users := make([]string, 0, len(entry.Users))
		for _, user := range entry.Users {
			users = append(users, user.UserID)
		}
		d.Entries = append(d.Entries, raffle.Entry{
			EntrantNumber: entry.EntrantNumber,
			Users:         users,
			Eliminated:    entry.Eliminated,
			EliminatedAt:  entry.EliminatedAt,
			EliminatedBy:  entry.EliminatedBy,
			DBID:          entry.ID,
		})
	}
	return d
}

func toRaffleList(records []Drawing) []*raffle.Drawing {
	out := make([]*raffle.Drawing, 0, len(records))
	for i := range records {
		out = append(out, toRaffle(&records[i]))
	}
	return out
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

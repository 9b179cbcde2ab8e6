package cmdkit

import (
	"context"
	"time"

	"github.com/fernandezvara/dbkit"
	"github.com/uptrace/bun"
)

// InvocationRecord is one dispatch outcome, as persisted by the Auditor.
type InvocationRecord struct {
	bun.BaseModel `bun:"table:command_audit_log,alias:cal"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Timestamp time.Time `bun:"timestamp,notnull,default:current_timestamp"`

	// Who invoked, and from where
	InvokerID string `bun:"invoker_id,notnull"`
	ChannelID string `bun:"channel_id"`
	GuildID   string `bun:"guild_id"`

	// What was invoked
	Command string `bun:"command"` // display name, empty when unresolved
	Input   string `bun:"input,notnull"`

	// How it went
	Status string `bun:"status,notnull"` // successful, checks_failed, on_cooldown, unknown, disabled, fault
	Reason string `bun:"reason"`

	// Additional context (JSON)
	Metadata map[string]any `bun:"metadata,type:jsonb"`
}

// newInvocationRecord flattens a dispatch outcome into its audit shape.
func newInvocationRecord(inv *Invocation, cmd *Command, raw string, res *Result, err error) InvocationRecord {
	rec := InvocationRecord{
		InvokerID: inv.InvokerID,
		ChannelID: inv.ChannelID,
		GuildID:   inv.GuildID,
		Input:     raw,
		Metadata:  inv.Meta,
	}
	if cmd != nil {
		rec.Command = cmd.Name()
	}
	switch {
	case err == nil:
		rec.Status = res.Status().String()
		rec.Reason = res.Reason()
	case IsUnknownCommand(err):
		rec.Status = "unknown"
		rec.Reason = err.Error()
	case IsCommandDisabled(err):
		rec.Status = "disabled"
		rec.Reason = err.Error()
	default:
		rec.Status = "fault"
		rec.Reason = err.Error()
	}
	return rec
}

// AuditRecorder receives one record per dispatch outcome. Implementations
// must be safe for concurrent use; dispatches from unrelated invocations can
// record at the same time.
type AuditRecorder interface {
	Record(ctx context.Context, rec InvocationRecord) error
}

// Auditor is the shipped AuditRecorder, persisting records through dbkit.
type Auditor struct {
	db dbkit.IDB
}

// NewAuditor creates an Auditor on an existing database connection.
//
// Example:
//
//	db, _ := dbkit.New(dbkit.Config{URL: databaseURL})
//	auditor := cmdkit.NewAuditor(db)
//	d, _ := cmdkit.NewDispatcher(root, cmdkit.WithAuditRecorder(auditor))
func NewAuditor(db dbkit.IDB) *Auditor {
	return &Auditor{db: db}
}

// Migrations returns the database migrations required by the Auditor.
// Run them with db.Migrate(ctx, auditor.Migrations()).
func (a *Auditor) Migrations() []dbkit.Migration {
	return []dbkit.Migration{
		{
			ID:          "cmdkit-001",
			Description: "Create command_audit_log table",
			SQL: `
                CREATE TABLE IF NOT EXISTS command_audit_log (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    timestamp TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    invoker_id TEXT NOT NULL,
                    channel_id TEXT,
                    guild_id TEXT,
                    command TEXT,
                    input TEXT NOT NULL,
                    status TEXT NOT NULL,
                    reason TEXT,
                    metadata JSONB
                )`,
		},
	}
}

// Record persists one dispatch outcome.
func (a *Auditor) Record(ctx context.Context, rec InvocationRecord) error {
	_, err := a.db.NewInsert().Model(&rec).Exec(ctx)
	return dbkit.WithErr1(err, "RecordInvocation").Err()
}

// Log retrieves audit records with optional filters, newest first.
func (a *Auditor) Log(ctx context.Context, filter AuditFilter) ([]InvocationRecord, error) {
	var recs []InvocationRecord
	q := a.db.NewSelect().Model(&recs)
	if filter.InvokerID != "" {
		q = q.Where("invoker_id = ?", filter.InvokerID)
	}
	if filter.ChannelID != "" {
		q = q.Where("channel_id = ?", filter.ChannelID)
	}
	if filter.GuildID != "" {
		q = q.Where("guild_id = ?", filter.GuildID)
	}
	if filter.Command != "" {
		q = q.Where("command = ?", filter.Command)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if !filter.Since.IsZero() {
		q = q.Where("timestamp >= ?", filter.Since)
	}
	if !filter.Until.IsZero() {
		q = q.Where("timestamp <= ?", filter.Until)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 100 // Default limit
	}
	q = q.Limit(limit)

	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	q = q.Order("timestamp DESC")
	err := dbkit.WithErr1(q.Scan(ctx), "GetInvocationLog").Err()
	if err != nil {
		return nil, err
	}

	return recs, nil
}

// AuditFilter provides options for filtering audit log queries.
type AuditFilter struct {
	// Filter by invoker
	InvokerID string

	// Filter by origin
	ChannelID string
	GuildID   string

	// Filter by command display name
	Command string

	// Filter by outcome status
	Status string

	// Filter by time range
	Since time.Time
	Until time.Time

	// Pagination
	Limit  int
	Offset int
}

// NewAuditFilter creates an AuditFilter with default values.
func NewAuditFilter() AuditFilter {
	return AuditFilter{
		Limit: 100,
	}
}

// WithInvoker sets the invoker filter.
func (f AuditFilter) WithInvoker(invokerID string) AuditFilter {
	f.InvokerID = invokerID
	return f
}

// WithChannel sets the channel filter.
func (f AuditFilter) WithChannel(channelID string) AuditFilter {
	f.ChannelID = channelID
	return f
}

// WithGuild sets the guild filter.
func (f AuditFilter) WithGuild(guildID string) AuditFilter {
	f.GuildID = guildID
	return f
}

// WithCommand sets the command filter.
func (f AuditFilter) WithCommand(command string) AuditFilter {
	f.Command = command
	return f
}

// WithStatus sets the outcome status filter.
func (f AuditFilter) WithStatus(status string) AuditFilter {
	f.Status = status
	return f
}

// WithTimeRange sets the time range filter.
func (f AuditFilter) WithTimeRange(since, until time.Time) AuditFilter {
	f.Since = since
	f.Until = until
	return f
}

// WithPagination sets limit and offset.
func (f AuditFilter) WithPagination(limit, offset int) AuditFilter {
	f.Limit = limit
	f.Offset = offset
	return f
}

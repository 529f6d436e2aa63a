package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/propera/pdc_backend/internal/apperrors"
	"github.com/propera/pdc_backend/internal/core/domain"
	portsrepo "github.com/propera/pdc_backend/internal/core/ports/repositories"
	"github.com/propera/pdc_backend/internal/models"
	"github.com/propera/pdc_backend/internal/utils/mapping"
	"github.com/propera/pdc_backend/internal/utils/pagination"
)

// uniqueViolation is the Postgres error code raised when the per-cheque request_id
// index rejects a replayed transition.
const uniqueViolation = "23505"

type PgxChequeRepository struct {
	BaseRepository
}

// newPgxChequeRepository creates a new repository for cheque and transition data.
func newPgxChequeRepository(pool *pgxpool.Pool) portsrepo.ChequeRepositoryWithTx {
	return &PgxChequeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxChequeRepository implements portsrepo.ChequeRepositoryWithTx
var _ portsrepo.ChequeRepositoryWithTx = (*PgxChequeRepository)(nil)

const chequeColumns = `
	cheque_id, cheque_number, bank_name, amount, cheque_date, tenant_id, lease_id, invoice_id,
	status, bank_account_id, deposit_date, cleared_date, bounced_date, bounce_reason,
	withdrawal_date, withdraw_reason, replacement_cheque_id, original_cheque_id, version,
	created_at, created_by, last_updated_at, last_updated_by`

const insertChequeQuery = `
	INSERT INTO cheques (
		cheque_id, cheque_number, bank_name, amount, cheque_date, tenant_id, lease_id, invoice_id,
		status, bank_account_id, deposit_date, cleared_date, bounced_date, bounce_reason,
		withdrawal_date, withdraw_reason, replacement_cheque_id, original_cheque_id, version,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
`

const insertTransitionQuery = `
	INSERT INTO cheque_transitions (transition_id, cheque_id, from_status, to_status, notes, request_id, created_at, created_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`

func chequeInsertArgs(m models.Cheque) []interface{} {
	return []interface{}{
		m.ChequeID,
		m.ChequeNumber,
		m.BankName,
		m.Amount,
		m.ChequeDate,
		m.TenantID,
		nullString(m.LeaseID),
		nullString(m.InvoiceID),
		m.Status,
		nullString(m.BankAccountID),
		m.DepositDate,
		m.ClearedDate,
		m.BouncedDate,
		nullString(m.BounceReason),
		m.WithdrawalDate,
		nullString(m.WithdrawReason),
		m.ReplacementChequeID,
		m.OriginalChequeID,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

func transitionInsertArgs(m models.ChequeTransition) []interface{} {
	var from interface{}
	if m.FromStatus != nil {
		from = string(*m.FromStatus)
	}
	return []interface{}{
		m.TransitionID,
		m.ChequeID,
		from,
		m.ToStatus,
		nullString(m.Notes),
		m.RequestID,
		m.CreatedAt,
		m.CreatedBy,
	}
}

// scanCheque scans one cheque row. The column order must match chequeColumns.
func scanCheque(row pgx.Row) (models.Cheque, error) {
	var m models.Cheque
	var leaseID, invoiceID, bankAccountID, bounceReason, withdrawReason sql.NullString

	err := row.Scan(
		&m.ChequeID,
		&m.ChequeNumber,
		&m.BankName,
		&m.Amount,
		&m.ChequeDate,
		&m.TenantID,
		&leaseID,
		&invoiceID,
		&m.Status,
		&bankAccountID,
		&m.DepositDate,
		&m.ClearedDate,
		&m.BouncedDate,
		&bounceReason,
		&m.WithdrawalDate,
		&withdrawReason,
		&m.ReplacementChequeID,
		&m.OriginalChequeID,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Cheque{}, err
	}

	m.LeaseID = leaseID.String
	m.InvoiceID = invoiceID.String
	m.BankAccountID = bankAccountID.String
	m.BounceReason = bounceReason.String
	m.WithdrawReason = withdrawReason.String
	return m, nil
}

// ensureNoDuplicateInstrument rejects a (tenant, number, bank) identity that still
// has a non-terminal cheque.
func ensureNoDuplicateInstrument(ctx context.Context, tx pgx.Tx, cheque models.Cheque) error {
	const query = `
		SELECT 1 FROM cheques
		WHERE tenant_id = $1 AND cheque_number = $2 AND bank_name = $3
		  AND status NOT IN ('CLEARED', 'CANCELLED', 'REPLACED', 'WITHDRAWN')
		LIMIT 1;
	`
	var one int
	err := tx.QueryRow(ctx, query, cheque.TenantID, cheque.ChequeNumber, cheque.BankName).Scan(&one)
	if err == nil {
		return apperrors.ErrDuplicateInstrument
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return apperrors.NewAppError(500, "failed to check cheque uniqueness", err)
}

// CreateCheque inserts a cheque and its creation transition entry in one transaction.
func (r *PgxChequeRepository) CreateCheque(ctx context.Context, cheque domain.Cheque, transition domain.ChequeTransition) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored if the transaction commits

	modelCheque := mapping.ToModelCheque(cheque)
	if err := ensureNoDuplicateInstrument(ctx, tx, modelCheque); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, insertChequeQuery, chequeInsertArgs(modelCheque)...); err != nil {
		return apperrors.NewAppError(500, "failed to insert cheque "+modelCheque.ChequeID, err)
	}

	if _, err := tx.Exec(ctx, insertTransitionQuery, transitionInsertArgs(mapping.ToModelTransition(transition))...); err != nil {
		return apperrors.NewAppError(500, "failed to insert creation transition for cheque "+modelCheque.ChequeID, err)
	}

	return r.Commit(ctx, tx)
}

// CreateChequesBulk inserts several cheques with their creation transitions in one
// transaction; all succeed or none do.
func (r *PgxChequeRepository) CreateChequesBulk(ctx context.Context, cheques []domain.Cheque, transitions []domain.ChequeTransition) error {
	if len(cheques) != len(transitions) {
		return apperrors.NewAppError(500, "cheque/transition count mismatch in bulk create", nil)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	for _, cheque := range cheques {
		if err := ensureNoDuplicateInstrument(ctx, tx, mapping.ToModelCheque(cheque)); err != nil {
			return err
		}
	}

	batch := &pgx.Batch{}
	for i, cheque := range cheques {
		batch.Queue(insertChequeQuery, chequeInsertArgs(mapping.ToModelCheque(cheque))...)
		batch.Queue(insertTransitionQuery, transitionInsertArgs(mapping.ToModelTransition(transitions[i]))...)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute bulk cheque insert batch", err)
	}

	return r.Commit(ctx, tx)
}

// UpdateChequeStatus writes the cheque's new status and stage fields plus the
// transition row atomically, conditioned on expectedVersion.
func (r *PgxChequeRepository) UpdateChequeStatus(ctx context.Context, cheque domain.Cheque, expectedVersion int64, transition domain.ChequeTransition) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelCheque := mapping.ToModelCheque(cheque)

	// The history append goes first so a replayed request id fails fast on the
	// unique index before touching the cheque row.
	if _, err := tx.Exec(ctx, insertTransitionQuery, transitionInsertArgs(mapping.ToModelTransition(transition))...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.ErrDuplicateRequest
		}
		return apperrors.NewAppError(500, "failed to insert transition for cheque "+modelCheque.ChequeID, err)
	}

	const query = `
		UPDATE cheques
		SET status = $3,
		    bank_account_id = $4,
		    deposit_date = $5,
		    cleared_date = $6,
		    bounced_date = $7,
		    bounce_reason = $8,
		    withdrawal_date = $9,
		    withdraw_reason = $10,
		    replacement_cheque_id = $11,
		    version = version + 1,
		    last_updated_at = $12,
		    last_updated_by = $13
		WHERE cheque_id = $1 AND version = $2;
	`
	cmdTag, err := tx.Exec(ctx, query,
		modelCheque.ChequeID,
		expectedVersion,
		modelCheque.Status,
		nullString(modelCheque.BankAccountID),
		modelCheque.DepositDate,
		modelCheque.ClearedDate,
		modelCheque.BouncedDate,
		nullString(modelCheque.BounceReason),
		modelCheque.WithdrawalDate,
		nullString(modelCheque.WithdrawReason),
		modelCheque.ReplacementChequeID,
		modelCheque.LastUpdatedAt,
		modelCheque.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update cheque "+modelCheque.ChequeID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either the cheque is gone or someone else moved it first.
		var exists bool
		checkErr := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM cheques WHERE cheque_id = $1)`, modelCheque.ChequeID).Scan(&exists)
		if checkErr != nil {
			return apperrors.NewAppError(500, "failed to verify cheque "+modelCheque.ChequeID+" after stale update", checkErr)
		}
		if !exists {
			return apperrors.NewNotFoundError("cheque " + modelCheque.ChequeID + " not found for update")
		}
		return apperrors.ErrConcurrentModification
	}

	return r.Commit(ctx, tx)
}

// LinkReplacement atomically inserts the replacement cheque with its creation
// transition, marks the original REPLACED with its forward link, and appends the
// original's transition row.
func (r *PgxChequeRepository) LinkReplacement(ctx context.Context, original domain.Cheque, expectedVersion int64, replacement domain.Cheque, originalTransition, replacementTransition domain.ChequeTransition) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelOriginal := mapping.ToModelCheque(original)
	modelReplacement := mapping.ToModelCheque(replacement)

	if err := ensureNoDuplicateInstrument(ctx, tx, modelReplacement); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, insertChequeQuery, chequeInsertArgs(modelReplacement)...); err != nil {
		return apperrors.NewAppError(500, "failed to insert replacement cheque "+modelReplacement.ChequeID, err)
	}
	if _, err := tx.Exec(ctx, insertTransitionQuery, transitionInsertArgs(mapping.ToModelTransition(replacementTransition))...); err != nil {
		return apperrors.NewAppError(500, "failed to insert creation transition for replacement "+modelReplacement.ChequeID, err)
	}

	if _, err := tx.Exec(ctx, insertTransitionQuery, transitionInsertArgs(mapping.ToModelTransition(originalTransition))...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.ErrDuplicateRequest
		}
		return apperrors.NewAppError(500, "failed to insert REPLACED transition for cheque "+modelOriginal.ChequeID, err)
	}

	// The original is frozen at REPLACED; its forward link is set exactly once.
	const query = `
		UPDATE cheques
		SET status = 'REPLACED',
		    replacement_cheque_id = $3,
		    version = version + 1,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE cheque_id = $1 AND version = $2 AND replacement_cheque_id IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query,
		modelOriginal.ChequeID,
		expectedVersion,
		modelReplacement.ChequeID,
		modelOriginal.LastUpdatedAt,
		modelOriginal.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark cheque "+modelOriginal.ChequeID+" as replaced", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConcurrentModification
	}

	return r.Commit(ctx, tx)
}

// FindChequeByID retrieves a cheque by its ID.
func (r *PgxChequeRepository) FindChequeByID(ctx context.Context, chequeID string) (*domain.Cheque, error) {
	query := `SELECT ` + chequeColumns + ` FROM cheques WHERE cheque_id = $1;`

	m, err := scanCheque(r.Pool.QueryRow(ctx, query, chequeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find cheque by ID "+chequeID, err)
	}

	domainCheque := mapping.ToDomainCheque(m)
	return &domainCheque, nil
}

// ListCheques retrieves a paginated, filtered cheque listing using token-based
// keyset pagination over (cheque_date, created_at) or (amount, created_at).
func (r *PgxChequeRepository) ListCheques(ctx context.Context, filter domain.ChequeFilter, limit int, nextToken *string) ([]domain.Cheque, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + chequeColumns + ` FROM cheques`

	whereClauses := []string{}
	args := []interface{}{}
	addArg := func(clausePrefix string, value interface{}) {
		args = append(args, value)
		whereClauses = append(whereClauses, clausePrefix+"$"+strconv.Itoa(len(args)))
	}

	if filter.TenantID != "" {
		addArg("tenant_id = ", filter.TenantID)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		addArg("status = ANY(", statuses)
		whereClauses[len(whereClauses)-1] += ")"
	}
	if filter.BankName != "" {
		addArg("bank_name = ", filter.BankName)
	}
	if filter.LeaseID != "" {
		addArg("lease_id = ", filter.LeaseID)
	}
	if filter.InvoiceID != "" {
		addArg("invoice_id = ", filter.InvoiceID)
	}
	if filter.DateFrom != nil {
		addArg("cheque_date >= ", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addArg("cheque_date <= ", *filter.DateTo)
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = domain.SortByChequeDate
	}

	var orderByClause string
	if sortBy == domain.SortByAmount {
		orderByClause = `ORDER BY amount DESC, created_at DESC`
	} else {
		orderByClause = `ORDER BY cheque_date DESC, created_at DESC`
	}

	// Cursor condition from the token; tuple comparison is concise and efficient
	// in Postgres.
	if nextToken != nil && *nextToken != "" {
		if sortBy == domain.SortByAmount {
			lastAmount, lastCreatedAt, decodeErr := pagination.DecodeAmountToken(*nextToken)
			if decodeErr != nil {
				return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
			}
			args = append(args, lastAmount, lastCreatedAt)
			whereClauses = append(whereClauses, "(amount, created_at) < ($"+strconv.Itoa(len(args)-1)+", $"+strconv.Itoa(len(args))+")")
		} else {
			lastChequeDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
			if decodeErr != nil {
				return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
			}
			args = append(args, lastChequeDate, lastCreatedAt)
			whereClauses = append(whereClauses, "(cheque_date, created_at) < ($"+strconv.Itoa(len(args)-1)+", $"+strconv.Itoa(len(args))+")")
		}
	}

	query := baseQuery
	for i, clause := range whereClauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	args = append(args, fetchLimit)
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query cheques", err)
	}
	defer rows.Close()

	modelCheques := make([]models.Cheque, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanCheque(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan cheque row", scanErr)
		}
		modelCheques = append(modelCheques, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating cheque rows", err)
	}

	// Determine the next token
	var nextTokenVal *string
	results := modelCheques
	if len(modelCheques) > limit {
		lastCheque := modelCheques[limit-1] // The actual last item of the current page
		var token string
		if sortBy == domain.SortByAmount {
			token = pagination.EncodeAmountToken(lastCheque.Amount, lastCheque.CreatedAt)
		} else {
			token = pagination.EncodeToken(lastCheque.ChequeDate, lastCheque.CreatedAt)
		}
		nextTokenVal = &token
		results = modelCheques[:limit]
	}

	return mapping.ToDomainChequeSlice(results), nextTokenVal, nil
}

// ListSweepCandidates retrieves RECEIVED cheques whose cheque date falls on or
// before the sweep boundary.
func (r *PgxChequeRepository) ListSweepCandidates(ctx context.Context, dueOnOrBefore time.Time, limit int) ([]domain.Cheque, error) {
	if limit <= 0 {
		limit = 500
	}

	query := `SELECT ` + chequeColumns + `
		FROM cheques
		WHERE status = 'RECEIVED' AND cheque_date <= $1
		ORDER BY cheque_date ASC, created_at ASC
		LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, dueOnOrBefore, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query sweep candidates", err)
	}
	defer rows.Close()

	modelCheques := []models.Cheque{}
	for rows.Next() {
		m, scanErr := scanCheque(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan sweep candidate row", scanErr)
		}
		modelCheques = append(modelCheques, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating sweep candidate rows", err)
	}

	return mapping.ToDomainChequeSlice(modelCheques), nil
}

// FindTransitionsByChequeID retrieves the full ordered history for a cheque.
func (r *PgxChequeRepository) FindTransitionsByChequeID(ctx context.Context, chequeID string) ([]domain.ChequeTransition, error) {
	query := `
		SELECT transition_id, cheque_id, from_status, to_status, notes, request_id, created_at, created_by
		FROM cheque_transitions
		WHERE cheque_id = $1
		ORDER BY created_at, transition_id;
	`
	rows, err := r.Pool.Query(ctx, query, chequeID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transitions for cheque "+chequeID, err)
	}
	defer rows.Close()

	transitions := []models.ChequeTransition{}
	for rows.Next() {
		m, scanErr := scanTransition(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transition row for cheque "+chequeID, scanErr)
		}
		transitions = append(transitions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transition rows for cheque "+chequeID, err)
	}

	return mapping.ToDomainTransitionSlice(transitions), nil
}

// FindTransitionByRequestID retrieves the transition a request id already produced
// for a cheque, if any.
func (r *PgxChequeRepository) FindTransitionByRequestID(ctx context.Context, chequeID, requestID string) (*domain.ChequeTransition, error) {
	query := `
		SELECT transition_id, cheque_id, from_status, to_status, notes, request_id, created_at, created_by
		FROM cheque_transitions
		WHERE cheque_id = $1 AND request_id = $2;
	`
	m, err := scanTransition(r.Pool.QueryRow(ctx, query, chequeID, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transition by request id for cheque "+chequeID, err)
	}

	domainTransition := mapping.ToDomainTransition(m)
	return &domainTransition, nil
}

func scanTransition(row pgx.Row) (models.ChequeTransition, error) {
	var m models.ChequeTransition
	var from sql.NullString
	var notes sql.NullString

	err := row.Scan(
		&m.TransitionID,
		&m.ChequeID,
		&from,
		&m.ToStatus,
		&notes,
		&m.RequestID,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return models.ChequeTransition{}, err
	}

	if from.Valid {
		f := models.ChequeStatus(from.String)
		m.FromStatus = &f
	}
	m.Notes = notes.String
	return m, nil
}

package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tradefair/src/core/domain"
	"tradefair/src/core/ports"
	"tradefair/src/infra/db"
)

// PostgresRepository implements MarketRepository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewPostgresRepository constructs a repository backed by Postgres.
func NewPostgresRepository(pg *db.Postgres, log *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		pool: pg.Pool,
		log:  log,
	}
}

var _ ports.MarketRepository = (*PostgresRepository)(nil)

func (r *PostgresRepository) Health(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// Users & profiles

func (r *PostgresRepository) CreateUser(ctx context.Context, username, email, passwordHash string, role domain.Role) (*domain.User, error) {
	const q = `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id, username, email, password_hash, role, created_at
	`
	var u domain.User
	err := r.pool.QueryRow(ctx, q, username, email, passwordHash, role).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewConflictError("username already taken")
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) CreateVendor(ctx context.Context, username, email, passwordHash, businessName, description string) (*domain.User, *domain.VendorProfile, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	const userQ = `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id, username, email, password_hash, role, created_at
	`
	var u domain.User
	err = tx.QueryRow(ctx, userQ, username, email, passwordHash, domain.RoleVendor).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, nil, domain.NewConflictError("username already taken")
		}
		return nil, nil, err
	}

	const profileQ = `
		INSERT INTO vendor_profiles (user_id, business_name, description)
		VALUES ($1, $2, $3)
		RETURNING user_id, business_name, description, created_at
	`
	var p domain.VendorProfile
	if err := tx.QueryRow(ctx, profileQ, u.ID, businessName, description).Scan(
		&p.UserID, &p.BusinessName, &p.Description, &p.CreatedAt,
	); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return &u, &p, nil
}

func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `
		SELECT user_id, username, email, password_hash, role, created_at
		FROM users
		WHERE username = $1
	`
	var u domain.User
	if err := r.pool.QueryRow(ctx, q, username).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	const q = `
		SELECT user_id, username, email, password_hash, role, created_at
		FROM users
		WHERE user_id = $1
	`
	var u domain.User
	if err := r.pool.QueryRow(ctx, q, userID).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) GetVendorProfile(ctx context.Context, userID int64) (*domain.VendorProfile, error) {
	const q = `
		SELECT user_id, business_name, description, created_at
		FROM vendor_profiles
		WHERE user_id = $1
	`
	var p domain.VendorProfile
	if err := r.pool.QueryRow(ctx, q, userID).Scan(
		&p.UserID, &p.BusinessName, &p.Description, &p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("vendor profile")
		}
		return nil, err
	}
	return &p, nil
}

// Domains

func (r *PostgresRepository) EnsureDomains(ctx context.Context, domains []domain.Domain) error {
	const q = `
		INSERT INTO domains (code, name, capacity)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, capacity = EXCLUDED.capacity
	`
	for _, d := range domains {
		if _, err := r.pool.Exec(ctx, q, d.Code, d.Name, d.Capacity); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRepository) DomainUsage(ctx context.Context) ([]ports.DomainUsage, error) {
	const q = `
		SELECT d.code, d.name, d.capacity, COUNT(s.shed_id)
		FROM domains d
		LEFT JOIN sheds s ON s.domain_code = d.code
		GROUP BY d.code, d.name, d.capacity
		ORDER BY d.code
	`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ports.DomainUsage
	for rows.Next() {
		var u ports.DomainUsage
		var used int64
		if err := rows.Scan(&u.Code, &u.Name, &u.Total, &used); err != nil {
			return nil, err
		}
		u.Used = int(used)
		u.Available = u.Total - u.Used
		if u.Available < 0 {
			u.Available = 0
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Shed allocation ledger

// AllocateShed serializes the capacity check and the insert per domain by
// locking the domain row for the duration of the transaction. Two
// concurrent allocations racing for the last slot cannot both pass the
// count check, so a domain can never be oversold.
func (r *PostgresRepository) AllocateShed(ctx context.Context, domainCode string, vendorID int64, name string) (*domain.Shed, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var capacity int
	err = tx.QueryRow(ctx, `SELECT capacity FROM domains WHERE code = $1 FOR UPDATE`, domainCode).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewUnknownDomainError(domainCode)
		}
		return nil, err
	}

	var used int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM sheds WHERE domain_code = $1`, domainCode).Scan(&used); err != nil {
		return nil, err
	}
	if used >= capacity {
		return nil, domain.NewDomainFullError(domainCode)
	}

	// Smallest free shed number within the domain.
	const numberQ = `
		SELECT COALESCE(MIN(n), 1)
		FROM generate_series(1, $2::int) AS n
		WHERE n NOT IN (SELECT shed_number FROM sheds WHERE domain_code = $1)
	`
	var number int
	if err := tx.QueryRow(ctx, numberQ, domainCode, capacity).Scan(&number); err != nil {
		return nil, err
	}

	const insertQ = `
		INSERT INTO sheds (domain_code, shed_number, name, vendor_id)
		VALUES ($1, $2, $3, $4)
		RETURNING shed_id, domain_code, shed_number, name, vendor_id, secured, created_at, updated_at
	`
	var s domain.Shed
	if err := tx.QueryRow(ctx, insertQ, domainCode, number, name, vendorID).Scan(
		&s.ID, &s.DomainCode, &s.Number, &s.Name, &s.VendorID, &s.Secured, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) GetShed(ctx context.Context, shedID int64) (*domain.Shed, error) {
	const q = `
		SELECT shed_id, domain_code, shed_number, name, vendor_id, secured, created_at, updated_at
		FROM sheds
		WHERE shed_id = $1
	`
	var s domain.Shed
	if err := r.pool.QueryRow(ctx, q, shedID).Scan(
		&s.ID, &s.DomainCode, &s.Number, &s.Name, &s.VendorID, &s.Secured, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("shed")
		}
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) UpdateShedName(ctx context.Context, shedID int64, name string) (*domain.Shed, error) {
	const q = `
		UPDATE sheds
		SET name = $2, updated_at = now()
		WHERE shed_id = $1
		RETURNING shed_id, domain_code, shed_number, name, vendor_id, secured, created_at, updated_at
	`
	var s domain.Shed
	if err := r.pool.QueryRow(ctx, q, shedID, name).Scan(
		&s.ID, &s.DomainCode, &s.Number, &s.Name, &s.VendorID, &s.Secured, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("shed")
		}
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) ReleaseShed(ctx context.Context, shedID int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM sheds WHERE shed_id = $1`, shedID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("shed")
	}
	return nil
}

func (r *PostgresRepository) SecureShed(ctx context.Context, shedID int64) error {
	res, err := r.pool.Exec(ctx, `UPDATE sheds SET secured = TRUE, updated_at = now() WHERE shed_id = $1`, shedID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("shed")
	}
	return nil
}

func (r *PostgresRepository) ListSheds(ctx context.Context, domainCode *string) ([]domain.Shed, error) {
	q := `
		SELECT shed_id, domain_code, shed_number, name, vendor_id, secured, created_at, updated_at
		FROM sheds
	`
	var args []any
	if domainCode != nil {
		q += ` WHERE domain_code = $1`
		args = append(args, *domainCode)
	}
	q += ` ORDER BY domain_code, shed_number`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSheds(rows)
}

func (r *PostgresRepository) ListShedsByVendor(ctx context.Context, vendorID int64) ([]domain.Shed, error) {
	const q = `
		SELECT shed_id, domain_code, shed_number, name, vendor_id, secured, created_at, updated_at
		FROM sheds
		WHERE vendor_id = $1
		ORDER BY shed_id
	`
	rows, err := r.pool.Query(ctx, q, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSheds(rows)
}

func scanSheds(rows pgx.Rows) ([]domain.Shed, error) {
	var out []domain.Shed
	for rows.Next() {
		var s domain.Shed
		if err := rows.Scan(
			&s.ID, &s.DomainCode, &s.Number, &s.Name, &s.VendorID, &s.Secured, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Products

func (r *PostgresRepository) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	const q = `
		INSERT INTO products (shed_id, vendor_id, name, description, price, quantity, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING product_id, shed_id, vendor_id, name, description, price, quantity, image_url, created_at, updated_at
	`
	var out domain.Product
	if err := r.pool.QueryRow(ctx, q,
		p.ShedID, p.VendorID, p.Name, p.Description, p.Price, p.Quantity, p.ImageURL,
	).Scan(
		&out.ID, &out.ShedID, &out.VendorID, &out.Name, &out.Description,
		&out.Price, &out.Quantity, &out.ImageURL, &out.CreatedAt, &out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PostgresRepository) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	const q = `
		SELECT product_id, shed_id, vendor_id, name, description, price, quantity, image_url, created_at, updated_at
		FROM products
		WHERE product_id = $1
	`
	var p domain.Product
	if err := r.pool.QueryRow(ctx, q, productID).Scan(
		&p.ID, &p.ShedID, &p.VendorID, &p.Name, &p.Description,
		&p.Price, &p.Quantity, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("product")
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	const q = `
		UPDATE products
		SET name = $2, description = $3, price = $4, quantity = $5, image_url = $6, updated_at = now()
		WHERE product_id = $1
		RETURNING product_id, shed_id, vendor_id, name, description, price, quantity, image_url, created_at, updated_at
	`
	var out domain.Product
	if err := r.pool.QueryRow(ctx, q,
		p.ID, p.Name, p.Description, p.Price, p.Quantity, p.ImageURL,
	).Scan(
		&out.ID, &out.ShedID, &out.VendorID, &out.Name, &out.Description,
		&out.Price, &out.Quantity, &out.ImageURL, &out.CreatedAt, &out.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("product")
		}
		return nil, err
	}
	return &out, nil
}

func (r *PostgresRepository) DeleteProduct(ctx context.Context, productID int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM products WHERE product_id = $1`, productID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("product")
	}
	return nil
}

func (r *PostgresRepository) ListProducts(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error) {
	q := `
		SELECT product_id, shed_id, vendor_id, name, description, price, quantity, image_url, created_at, updated_at
		FROM products
	`
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.ShedID != nil {
		conds = append(conds, "shed_id = "+arg(*filter.ShedID))
	}
	if filter.MinPrice != nil {
		conds = append(conds, "price >= "+arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		conds = append(conds, "price <= "+arg(*filter.MaxPrice))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		ph := arg(pattern)
		conds = append(conds, "(name ILIKE "+ph+" OR description ILIKE "+ph+")")
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY product_id"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.ShedID, &p.VendorID, &p.Name, &p.Description,
			&p.Price, &p.Quantity, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Preorders

func (r *PostgresRepository) CreatePreorder(ctx context.Context, po *domain.Preorder) (*domain.Preorder, error) {
	const q = `
		INSERT INTO preorders (customer_id, vendor_id, product_id, quantity, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING preorder_id, customer_id, vendor_id, product_id, quantity, status, created_at, updated_at
	`
	var out domain.Preorder
	if err := r.pool.QueryRow(ctx, q,
		po.CustomerID, po.VendorID, po.ProductID, po.Quantity, domain.PreorderPending,
	).Scan(
		&out.ID, &out.CustomerID, &out.VendorID, &out.ProductID,
		&out.Quantity, &out.Status, &out.CreatedAt, &out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PostgresRepository) GetPreorder(ctx context.Context, preorderID int64) (*domain.Preorder, error) {
	const q = `
		SELECT preorder_id, customer_id, vendor_id, product_id, quantity, status, created_at, updated_at
		FROM preorders
		WHERE preorder_id = $1
	`
	var po domain.Preorder
	if err := r.pool.QueryRow(ctx, q, preorderID).Scan(
		&po.ID, &po.CustomerID, &po.VendorID, &po.ProductID,
		&po.Quantity, &po.Status, &po.CreatedAt, &po.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("preorder")
		}
		return nil, err
	}
	return &po, nil
}

func (r *PostgresRepository) UpdatePreorderQuantity(ctx context.Context, preorderID int64, quantity int) (*domain.Preorder, error) {
	const q = `
		UPDATE preorders
		SET quantity = $2, updated_at = now()
		WHERE preorder_id = $1
		RETURNING preorder_id, customer_id, vendor_id, product_id, quantity, status, created_at, updated_at
	`
	var po domain.Preorder
	if err := r.pool.QueryRow(ctx, q, preorderID, quantity).Scan(
		&po.ID, &po.CustomerID, &po.VendorID, &po.ProductID,
		&po.Quantity, &po.Status, &po.CreatedAt, &po.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("preorder")
		}
		return nil, err
	}
	return &po, nil
}

// ConfirmPreorder flips the status and decrements product stock in one
// transaction; the stock row is guarded by the conditional UPDATE so a
// confirm can never drive quantity negative.
func (r *PostgresRepository) ConfirmPreorder(ctx context.Context, preorderID int64) (*domain.Preorder, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const statusQ = `
		UPDATE preorders
		SET status = $2, updated_at = now()
		WHERE preorder_id = $1 AND status = $3
		RETURNING preorder_id, customer_id, vendor_id, product_id, quantity, status, created_at, updated_at
	`
	var po domain.Preorder
	if err := tx.QueryRow(ctx, statusQ, preorderID, domain.PreorderConfirmed, domain.PreorderPending).Scan(
		&po.ID, &po.CustomerID, &po.VendorID, &po.ProductID,
		&po.Quantity, &po.Status, &po.CreatedAt, &po.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewConflictError("preorder is not pending")
		}
		return nil, err
	}

	const stockQ = `
		UPDATE products
		SET quantity = quantity - $2, updated_at = now()
		WHERE product_id = $1 AND quantity >= $2
	`
	res, err := tx.Exec(ctx, stockQ, po.ProductID, po.Quantity)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected() == 0 {
		return nil, domain.NewConflictError("insufficient stock")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *PostgresRepository) CancelPreorder(ctx context.Context, preorderID int64) (*domain.Preorder, error) {
	const q = `
		UPDATE preorders
		SET status = $2, updated_at = now()
		WHERE preorder_id = $1
		RETURNING preorder_id, customer_id, vendor_id, product_id, quantity, status, created_at, updated_at
	`
	var po domain.Preorder
	if err := r.pool.QueryRow(ctx, q, preorderID, domain.PreorderCancelled).Scan(
		&po.ID, &po.CustomerID, &po.VendorID, &po.ProductID,
		&po.Quantity, &po.Status, &po.CreatedAt, &po.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("preorder")
		}
		return nil, err
	}
	return &po, nil
}

func (r *PostgresRepository) DeletePreorder(ctx context.Context, preorderID int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM preorders WHERE preorder_id = $1`, preorderID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("preorder")
	}
	return nil
}

func (r *PostgresRepository) ListPreordersByCustomer(ctx context.Context, customerID int64) ([]domain.Preorder, error) {
	return r.listPreorders(ctx, `customer_id`, customerID)
}

func (r *PostgresRepository) ListPreordersByVendor(ctx context.Context, vendorID int64) ([]domain.Preorder, error) {
	return r.listPreorders(ctx, `vendor_id`, vendorID)
}

func (r *PostgresRepository) listPreorders(ctx context.Context, column string, id int64) ([]domain.Preorder, error) {
	q := fmt.Sprintf(`
		SELECT preorder_id, customer_id, vendor_id, product_id, quantity, status, created_at, updated_at
		FROM preorders
		WHERE %s = $1
		ORDER BY preorder_id
	`, column)
	rows, err := r.pool.Query(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Preorder
	for rows.Next() {
		var po domain.Preorder
		if err := rows.Scan(
			&po.ID, &po.CustomerID, &po.VendorID, &po.ProductID,
			&po.Quantity, &po.Status, &po.CreatedAt, &po.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, po)
	}
	return out, rows.Err()
}

// Follows

func (r *PostgresRepository) CreateFollow(ctx context.Context, customerID, vendorID int64) (*domain.Follow, error) {
	const q = `
		INSERT INTO follows (customer_id, vendor_id)
		VALUES ($1, $2)
		RETURNING follow_id, customer_id, vendor_id, created_at
	`
	var f domain.Follow
	if err := r.pool.QueryRow(ctx, q, customerID, vendorID).Scan(
		&f.ID, &f.CustomerID, &f.VendorID, &f.CreatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewConflictError("already following")
		}
		return nil, err
	}
	return &f, nil
}

func (r *PostgresRepository) DeleteFollow(ctx context.Context, customerID, vendorID int64) error {
	res, err := r.pool.Exec(ctx,
		`DELETE FROM follows WHERE customer_id = $1 AND vendor_id = $2`, customerID, vendorID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("follow")
	}
	return nil
}

func (r *PostgresRepository) ListFollows(ctx context.Context, customerID int64) ([]domain.Follow, error) {
	const q = `
		SELECT follow_id, customer_id, vendor_id, created_at
		FROM follows
		WHERE customer_id = $1
		ORDER BY follow_id
	`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Follow
	for rows.Next() {
		var f domain.Follow
		if err := rows.Scan(&f.ID, &f.CustomerID, &f.VendorID, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Payments

func (r *PostgresRepository) CreatePayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	const q = `
		INSERT INTO payments (kind, shed_id, preorder_id, amount, reference, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING payment_id, kind, shed_id, preorder_id, amount, reference, status, created_at, updated_at
	`
	status := p.Status
	if status == "" {
		status = domain.PaymentPending
	}
	var out domain.Payment
	if err := r.pool.QueryRow(ctx, q,
		p.Kind, p.ShedID, p.PreorderID, p.Amount, p.Reference, status,
	).Scan(
		&out.ID, &out.Kind, &out.ShedID, &out.PreorderID,
		&out.Amount, &out.Reference, &out.Status, &out.CreatedAt, &out.UpdatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewConflictError("duplicate payment reference")
		}
		return nil, err
	}
	return &out, nil
}

func (r *PostgresRepository) GetPaymentByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	const q = `
		SELECT payment_id, kind, shed_id, preorder_id, amount, reference, status, created_at, updated_at
		FROM payments
		WHERE reference = $1
	`
	var p domain.Payment
	if err := r.pool.QueryRow(ctx, q, reference).Scan(
		&p.ID, &p.Kind, &p.ShedID, &p.PreorderID,
		&p.Amount, &p.Reference, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("payment")
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) GetPaymentForPreorder(ctx context.Context, preorderID int64) (*domain.Payment, error) {
	const q = `
		SELECT payment_id, kind, shed_id, preorder_id, amount, reference, status, created_at, updated_at
		FROM payments
		WHERE preorder_id = $1
		ORDER BY payment_id DESC
		LIMIT 1
	`
	var p domain.Payment
	if err := r.pool.QueryRow(ctx, q, preorderID).Scan(
		&p.ID, &p.Kind, &p.ShedID, &p.PreorderID,
		&p.Amount, &p.Reference, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("payment")
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) UpdatePaymentStatus(ctx context.Context, reference string, status domain.PaymentStatus) (*domain.Payment, error) {
	const q = `
		UPDATE payments
		SET status = $2, updated_at = now()
		WHERE reference = $1
		RETURNING payment_id, kind, shed_id, preorder_id, amount, reference, status, created_at, updated_at
	`
	var p domain.Payment
	if err := r.pool.QueryRow(ctx, q, reference, status).Scan(
		&p.ID, &p.Kind, &p.ShedID, &p.PreorderID,
		&p.Amount, &p.Reference, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("payment")
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) MarkShedPaymentSuccess(ctx context.Context, reference string) (*domain.Payment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const paymentQ = `
		UPDATE payments
		SET status = $2, updated_at = now()
		WHERE reference = $1
		RETURNING payment_id, kind, shed_id, preorder_id, amount, reference, status, created_at, updated_at
	`
	var p domain.Payment
	if err := tx.QueryRow(ctx, paymentQ, reference, domain.PaymentSuccess).Scan(
		&p.ID, &p.Kind, &p.ShedID, &p.PreorderID,
		&p.Amount, &p.Reference, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("payment")
		}
		return nil, err
	}

	if p.ShedID != nil {
		if _, err := tx.Exec(ctx,
			`UPDATE sheds SET secured = TRUE, updated_at = now() WHERE shed_id = $1`, *p.ShedID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &p, nil
}

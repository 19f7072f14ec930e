// Package pg connects to PostgreSQL with pgx/v5 and applies goose
// migrations. The edge uses it for the tenant directory; with no
// PG_CONN_URL configured the directory is disabled and nothing here runs.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//	if err := pg.Migrate(ctx, pool, db.Migrations(), cfg, log); err != nil {
//		return err
//	}
package pg

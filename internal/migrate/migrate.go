package migrate

import (
	"context"

	"storefront/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto
	CreateChecks           bool // CHECK-constraint для целостности
	CreateIndexes          bool // индексы и UNIQUE
	CreateFKsViaSQL        bool // FK через SQL (поверх GORM-constraint)
	CreateUpdatedAtTrigger bool // триггер обновления updated_at
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
	}
}

type step struct {
	name string
	sql  string
}

func run(db *gorm.DB, log *zap.Logger, steps []step) error {
	for _, s := range steps {
		if err := db.Exec(s.sql).Error; err != nil {
			log.Error("Не удалось выполнить шаг миграции", zap.String("step", s.name), zap.Error(err))
			return err
		}
	}
	return nil
}

func MigrateStorefrontDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	db = db.WithContext(ctx)
	log.Info("Начало миграции базы данных магазина")

	if opt.CreateExtensions {
		log.Info("Создание расширений PostgreSQL")
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("Не удалось включить расширение pgcrypto", zap.Error(err))
			return err
		}
	}

	// Порядок важен: родительские таблицы раньше дочерних
	log.Info("Создание таблиц")
	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Address{},
		&models.Category{},
		&models.Product{},
		&models.Variant{},
		&models.Order{},
		&models.OrderItem{},
		&models.Partner{},
	); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}
	log.Info("Таблицы успешно созданы")

	if opt.CreateUpdatedAtTrigger {
		log.Info("Создание триггеров updated_at")
		steps := []step{{name: "set_updated_at", sql: `
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;`}}
		for _, table := range []string{"categories", "products", "variants", "orders", "partners"} {
			steps = append(steps, step{name: "trg_" + table + "_updated", sql: `
DROP TRIGGER IF EXISTS trg_` + table + `_updated ON ` + table + `;
CREATE TRIGGER trg_` + table + `_updated
BEFORE UPDATE ON ` + table + `
FOR EACH ROW EXECUTE FUNCTION set_updated_at();`})
		}
		if err := run(db, log, steps); err != nil {
			return err
		}
		log.Info("Триггеры updated_at успешно созданы")
	}

	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")
		if err := run(db, log, []step{
			{name: "chk_orders_status_allowed", sql: `
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('pending','paid','shipped','delivered'));`},
			{name: "chk_orders_total_non_negative", sql: `
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_total_non_negative;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_total_non_negative
  CHECK (total_amount >= 0);`},
			{name: "chk_variants_stock_non_negative", sql: `
ALTER TABLE variants
  DROP CONSTRAINT IF EXISTS chk_variants_stock_non_negative;
ALTER TABLE variants
  ADD CONSTRAINT chk_variants_stock_non_negative
  CHECK (stock >= 0);`},
			{name: "chk_variants_price_non_negative", sql: `
ALTER TABLE variants
  DROP CONSTRAINT IF EXISTS chk_variants_price_non_negative;
ALTER TABLE variants
  ADD CONSTRAINT chk_variants_price_non_negative
  CHECK (price >= 0);`},
			{name: "chk_order_items_quantity_gt_zero", sql: `
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_quantity_gt_zero;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_quantity_gt_zero
  CHECK (quantity > 0);`},
			{name: "chk_order_items_price_non_negative", sql: `
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_price_non_negative;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_price_non_negative
  CHECK (price >= 0);`},
		}); err != nil {
			return err
		}
		log.Info("CHECK-ограничения успешно созданы")
	}

	if opt.CreateIndexes {
		log.Info("Создание индексов")
		if err := run(db, log, []step{
			// один покупатель на внешний идентификатор
			{name: "ux_customers_user_id", sql: `
CREATE UNIQUE INDEX IF NOT EXISTS ux_customers_user_id ON customers (user_id);`},
			{name: "ux_products_slug", sql: `
CREATE UNIQUE INDEX IF NOT EXISTS ux_products_slug ON products (slug);`},
			{name: "ux_categories_slug", sql: `
CREATE UNIQUE INDEX IF NOT EXISTS ux_categories_slug ON categories (slug);`},
			{name: "ux_order_items_order_variant", sql: `
CREATE UNIQUE INDEX IF NOT EXISTS ux_order_items_order_variant ON order_items (order_id, variant_id);`},
			{name: "ix_products_active_created", sql: `
CREATE INDEX IF NOT EXISTS ix_products_active_created ON products (is_active, created_at DESC);`},
			{name: "ix_orders_customer_created", sql: `
CREATE INDEX IF NOT EXISTS ix_orders_customer_created ON orders (customer_id, created_at DESC);`},
			{name: "ix_orders_status_created", sql: `
CREATE INDEX IF NOT EXISTS ix_orders_status_created ON orders (status, created_at DESC);`},
		}); err != nil {
			return err
		}
		log.Info("Индексы успешно созданы")
	}

	if opt.CreateFKsViaSQL {
		log.Info("Создание внешних ключей")
		if err := run(db, log, []step{
			{name: "fk_addresses_customer", sql: `
ALTER TABLE addresses
  DROP CONSTRAINT IF EXISTS fk_addresses_customer,
  ADD CONSTRAINT fk_addresses_customer
    FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE;`},
			{name: "fk_products_category", sql: `
ALTER TABLE products
  DROP CONSTRAINT IF EXISTS fk_products_category,
  ADD CONSTRAINT fk_products_category
    FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE SET NULL;`},
			{name: "fk_variants_product", sql: `
ALTER TABLE variants
  DROP CONSTRAINT IF EXISTS fk_variants_product,
  ADD CONSTRAINT fk_variants_product
    FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE;`},
			{name: "fk_orders_customer", sql: `
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS fk_orders_customer,
  ADD CONSTRAINT fk_orders_customer
    FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE RESTRICT;`},
			{name: "fk_orders_address", sql: `
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS fk_orders_address,
  ADD CONSTRAINT fk_orders_address
    FOREIGN KEY (address_id) REFERENCES addresses(id) ON DELETE RESTRICT;`},
			{name: "fk_order_items_order", sql: `
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_order,
  ADD CONSTRAINT fk_order_items_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;`},
			{name: "fk_order_items_variant", sql: `
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_variant,
  ADD CONSTRAINT fk_order_items_variant
    FOREIGN KEY (variant_id) REFERENCES variants(id) ON DELETE RESTRICT;`},
		}); err != nil {
			return err
		}
		log.Info("Внешние ключи успешно созданы")
	}

	log.Info("Миграция базы данных магазина успешно завершена")
	return nil
}

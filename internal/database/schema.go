package database

// SetupWarehouseSchema creates the analysis tables the load-warehouse
// command fills from the pipelines' CSV outputs.
func (db *DB) SetupWarehouseSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sim_orders (
		    id BIGINT PRIMARY KEY AUTO_INCREMENT,
		    order_id VARCHAR(16) NOT NULL,
		    customer_id VARCHAR(16) NOT NULL,
		    order_date DATE NOT NULL,
		    is_prime_member BOOLEAN NOT NULL,
		    expected_delivery_date DATE NOT NULL,
		    actual_delivery_date DATE NOT NULL,
		    delivery_status ENUM('Early', 'On-Time', 'Late') NOT NULL,
		    carrier VARCHAR(16) NOT NULL,
		    delivery_cost_to_amazon DECIMAL(10,2) NOT NULL,
		    product_id VARCHAR(16) NOT NULL,
		    order_quantity INT NOT NULL,
		    destination_zip_code CHAR(5) NOT NULL,
		    load_id CHAR(36) NOT NULL,
		    loaded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		    INDEX idx_order_id (order_id),
		    INDEX idx_order_date (order_date),
		    INDEX idx_delivery_status (delivery_status),
		    INDEX idx_carrier (carrier),
		    INDEX idx_load_id (load_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS route_summaries (
		    id BIGINT PRIMARY KEY AUTO_INCREMENT,
		    route_id VARCHAR(64) NOT NULL,
		    city VARCHAR(100),
		    route_date DATE NULL,
		    station_code VARCHAR(16),
		    route_score VARCHAR(16),
		    origin_latitude DOUBLE NULL,
		    origin_longitude DOUBLE NULL,
		    vehicle_capacity_cm3 DOUBLE NULL,
		    num_deliveries INT NOT NULL,
		    total_calculated_volume_cm3 DOUBLE NOT NULL,
		    actual_route_duration_hours DOUBLE NOT NULL,
		    actual_route_distance_km DOUBLE NOT NULL,
		    load_id CHAR(36) NOT NULL,
		    loaded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		    INDEX idx_route_id (route_id),
		    INDEX idx_city (city),
		    INDEX idx_route_date (route_date),
		    INDEX idx_load_id (load_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

// TruncateWarehouse empties the analysis tables but keeps the schema.
func (db *DB) TruncateWarehouse() error {
	queries := []string{
		"DELETE FROM sim_orders",
		"DELETE FROM route_summaries",
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}

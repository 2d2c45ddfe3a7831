package main

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// Database stores the wallets each chat user tracks
type Database struct {
	db *sql.DB
}

func initDB(path string) (*Database, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS user_wallets (
			user_id INTEGER,
			wallet_address TEXT,
			added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, wallet_address)
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Database{db: db}, nil
}

// AddWallet starts tracking a wallet. Adding the same wallet twice is a no-op.
func (d *Database) AddWallet(userID int64, walletAddress string) error {
	_, err := d.db.Exec(
		"INSERT OR IGNORE INTO user_wallets (user_id, wallet_address) VALUES (?, ?)",
		userID, walletAddress,
	)
	return err
}

// RemoveWallet stops tracking a wallet and reports whether it was tracked
func (d *Database) RemoveWallet(userID int64, walletAddress string) (bool, error) {
	res, err := d.db.Exec(
		"DELETE FROM user_wallets WHERE user_id = ? AND wallet_address = ?",
		userID, walletAddress,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *Database) GetWallets(userID int64) ([]string, error) {
	rows, err := d.db.Query(
		"SELECT wallet_address FROM user_wallets WHERE user_id = ? ORDER BY added_at, wallet_address",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []string
	for rows.Next() {
		var wallet string
		if err := rows.Scan(&wallet); err != nil {
			return nil, err
		}
		wallets = append(wallets, wallet)
	}
	return wallets, rows.Err()
}

func (d *Database) Close() error {
	return d.db.Close()
}

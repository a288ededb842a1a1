package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// pq registra o driver "postgres" no database/sql
	"github.com/lib/pq"
)

// NewPostgresDB inicializa e configura o pool de conexões com o PostgreSQL.
// Retorna a conexão *sql.DB pronta para uso.
func NewPostgresDB(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir a conexão com o DB: %w", err)
	}

	// Garante que as credenciais e o servidor estão corretos antes de subir a API.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao realizar o ping inicial no DB: %w", err)
	}

	// Pool de conexões
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return db, nil
}

// uniqueViolation é o SQLSTATE de violação de índice único.
const uniqueViolation = "23505"

// IsUniqueViolation informa se o erro do driver é de chave duplicada.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

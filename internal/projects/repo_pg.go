package projects

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const insertQuery = `
INSERT INTO cadastro_obra (
	nome_usuario, email_usuario, nome_do_contato_de_suprimentos, suprimentos_telefone_de_contato,
	nome_obra, endereco, cidade, estado, numero_de_pavimentos, data_inicio_obra, data_final_obra_prevista,
	descricao_da_obra, fase_obra, dificuldade_de_gerenciamento_de_materiais,
	"URL_imagem_fase_atual", "URL_imagem_projeto_final", descricao_ia_fase_obra
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
RETURNING id`

// Insert writes one row and returns its id.
func (r *PGRepo) Insert(ctx context.Context, record Record) (int64, error) {
	currentURLs, err := marshalJSONB(record.CurrentSituationImageURLs)
	if err != nil {
		return 0, err
	}
	finalURLs, err := marshalJSONB(record.FinalProjectImageURLs)
	if err != nil {
		return 0, err
	}
	aiAnalysis, err := marshalJSONB(record.Analysis)
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.DB.QueryRowContext(ctx, insertQuery,
		record.FullName,
		record.Email,
		record.SuppliesContactName,
		record.SuppliesContactPhone,
		record.ProjectName,
		record.Address,
		record.City,
		record.State,
		record.FloorCount,
		record.StartDate,
		record.EndDate,
		record.ProjectDescription,
		record.CurrentPhaseDescription,
		record.MaterialManagementDifficulty,
		currentURLs,
		finalURLs,
		aiAnalysis,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert cadastro_obra: %w", err)
	}
	return id, nil
}

func marshalJSONB(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal jsonb: %w", err)
	}
	return data, nil
}

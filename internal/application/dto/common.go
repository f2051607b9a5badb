package dto

import "github.com/gestaofacil/erp-api/internal/domain/entity"

// Envelope é o corpo uniforme de toda resposta da API:
// {success, data, message, error}.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"` // código do erro, vazio em sucesso
}

// MovementType traduz o tipo externo ("in"/"out") para o tipo persistido
// ("entrada"/"saida"). ok=false para valores desconhecidos.
func MovementType(apiType string) (string, bool) {
	switch apiType {
	case "in":
		return entity.MovementEntrada, true
	case "out":
		return entity.MovementSaida, true
	}
	return "", false
}

package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código de classe 23 do Postgres para violação de constraint de
// exclusão (a constraint de intervalo dos agendamentos).
const pgExclusionViolation = "23P01"

// IsExclusionConflict detecta quando a constraint de exclusão do banco
// barrou um insert/update que a checagem em memória deixou passar.
// É a segunda linha de defesa contra corrida de reserva dupla.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}

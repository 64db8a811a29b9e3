package timeutil

import "time"

// Toda a aritmética de agenda trabalha em "minutos desde a meia-noite",
// nunca em time.Time, para não depender de fuso horário nem de
// arredondamento. Datas são normalizadas para meia-noite UTC.

const (
	// MinutesPerDay é o total de minutos de um dia.
	MinutesPerDay = 24 * 60

	// LastMinuteOfDay é 23:59 em minutos. Estouros de fim de dia são
	// grampeados aqui em vez de virar o dia seguinte.
	LastMinuteOfDay = MinutesPerDay - 1
)

// ToMinutes converte (hora, minuto) em minutos desde a meia-noite.
// Validação de faixa é responsabilidade de quem chama.
func ToMinutes(hour, minute int) int {
	return hour*60 + minute
}

// FromMinutes converte minutos desde a meia-noite de volta em (hora, minuto).
func FromMinutes(total int) (hour, minute int) {
	return total / 60, total % 60
}

// ClampEndOfDay grampeia valores que passariam das 23:59 no último
// minuto representável do dia. A agenda é de um dia só, de propósito.
func ClampEndOfDay(total int) int {
	if total > LastMinuteOfDay {
		return LastMinuteOfDay
	}
	return total
}

// NormalizeDate interpreta "YYYY-MM-DD" como meia-noite UTC daquele dia.
// Essa é a representação canônica usada em toda comparação de datas,
// independente do fuso de origem da requisição.
func NormalizeDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

// DayOf reduz um instante qualquer à meia-noite UTC do mesmo dia civil.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today devolve o dia de hoje já normalizado.
func Today() time.Time {
	return DayOf(time.Now())
}

// NowMinutes devolve o relógio do servidor em minutos desde a meia-noite.
// Usado apenas como fallback quando o cliente não informa o horário local.
func NowMinutes() int {
	now := time.Now()
	return ToMinutes(now.Hour(), now.Minute())
}

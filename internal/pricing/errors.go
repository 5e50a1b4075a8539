package pricing

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrComponenteInvalido marks a malformed "exactly one reference" edge: zero
// or more than one kind FK populated. This is a data-integrity fault — it
// means a write-path invariant was violated upstream — so it is fatal for the
// whole resolution, never silently priced as zero.
var ErrComponenteInvalido = errors.New("componente invalido: a referencia deve apontar para exatamente um tipo")

// ErrItemBaseInvalido is returned when a line is priced over something that
// cannot be sold directly (an insumo, or an unknown kind).
var ErrItemBaseInvalido = errors.New("item base invalido: apenas produto, receita ou combo podem ser vendidos")

// CodigoSelecao identifies the specific business rule a selection violated.
type CodigoSelecao string

const (
	SelecaoOpcaoDesconhecida       CodigoSelecao = "opcao_desconhecida"
	SelecaoQuantidadeInvalida      CodigoSelecao = "quantidade_invalida"
	SelecaoOpcoesDemais            CodigoSelecao = "opcoes_demais"
	SelecaoForaDoIntervalo         CodigoSelecao = "fora_do_intervalo"
	SelecaoObrigatoriaNaoAtendida  CodigoSelecao = "obrigatoria_nao_atendida"
	SelecaoAbaixoDoMinimo          CodigoSelecao = "abaixo_do_minimo"
	SelecaoAcimaDoMaximo           CodigoSelecao = "acima_do_maximo"
)

// ErroSelecao is the expected, user-facing rejection of a selection. It is a
// business error: callers translate Codigo into a message for the customer,
// and it is never logged as a system failure.
type ErroSelecao struct {
	Codigo  CodigoSelecao
	Grupo   string    // nome do vínculo/seção, quando conhecido
	OpcaoID uuid.UUID // opção que causou a rejeição, quando aplicável
	Detalhe string
}

func (e *ErroSelecao) Error() string {
	if e.Grupo != "" {
		return fmt.Sprintf("selecao invalida (%s) no grupo %q: %s", e.Codigo, e.Grupo, e.Detalhe)
	}
	return fmt.Sprintf("selecao invalida (%s): %s", e.Codigo, e.Detalhe)
}

// AsErroSelecao unwraps err into *ErroSelecao when it is one.
func AsErroSelecao(err error) (*ErroSelecao, bool) {
	var sel *ErroSelecao
	if errors.As(err, &sel) {
		return sel, true
	}
	return nil, false
}

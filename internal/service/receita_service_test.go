package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/dto"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
)

type receitaFixture struct {
	svc       ReceitaService
	repo      *stubReceitaRepo
	empresaID uuid.UUID
	farinhaID uuid.UUID
	paoID     uuid.UUID
	molhoID   uuid.UUID
}

func novoReceitaFixture() *receitaFixture {
	f := &receitaFixture{
		empresaID: uuid.New(),
		farinhaID: uuid.New(),
		paoID:     uuid.New(),
		molhoID:   uuid.New(),
	}
	f.repo = &stubReceitaRepo{
		receitas: map[uuid.UUID]*model.Receita{
			f.molhoID: {ID: f.molhoID, EmpresaID: f.empresaID, Nome: "Molho da casa", Ativo: true, Disponivel: true},
		},
		componentes: make(map[uuid.UUID][]model.ReceitaComponente),
	}
	insumoRepo := &stubInsumoRepo{insumos: map[uuid.UUID]*model.Insumo{
		f.farinhaID: {ID: f.farinhaID, EmpresaID: f.empresaID, Nome: "Farinha", Custo: dec("0.50")},
	}}
	produtoRepo := &stubProdutoRepo{produtos: map[uuid.UUID]*model.Produto{
		f.paoID: {ID: f.paoID, EmpresaID: f.empresaID, Nome: "Pao", PrecoVenda: dec("1.00"), Ativo: true, Disponivel: true},
	}}
	comboRepo := &stubComboRepo{combos: map[uuid.UUID]*model.Combo{}}

	f.svc = NewReceitaService(f.repo, insumoRepo, produtoRepo, comboRepo, nil)
	return f
}

func TestCriarReceita_ComComponentes(t *testing.T) {
	f := novoReceitaFixture()

	resp, err := f.svc.Criar(context.Background(), f.empresaID, dto.CriarReceitaRequest{
		Nome:       "Massa de pizza",
		PrecoVenda: dec("25.00"),
		Componentes: []dto.ComponenteRequest{
			{InsumoID: strPtr(f.farinhaID.String()), Quantidade: dec("0.3")},
			{ProdutoID: strPtr(f.paoID.String()), Quantidade: dec("1")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Massa de pizza", resp.Nome)
	require.Len(t, resp.Componentes, 2)
}

func TestCriarReceita_ComponenteSemReferencia(t *testing.T) {
	f := novoReceitaFixture()

	_, err := f.svc.Criar(context.Background(), f.empresaID, dto.CriarReceitaRequest{
		Nome:       "Quebrada",
		PrecoVenda: dec("10.00"),
		Componentes: []dto.ComponenteRequest{
			{Quantidade: dec("1")},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exatamente um")
}

func TestCriarReceita_ComponenteComDuasReferencias(t *testing.T) {
	f := novoReceitaFixture()

	_, err := f.svc.Criar(context.Background(), f.empresaID, dto.CriarReceitaRequest{
		Nome:       "Ambigua",
		PrecoVenda: dec("10.00"),
		Componentes: []dto.ComponenteRequest{
			{InsumoID: strPtr(f.farinhaID.String()), ProdutoID: strPtr(f.paoID.String()), Quantidade: dec("1")},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exatamente um")
}

func TestCriarReceita_QuantidadeNaoPositiva(t *testing.T) {
	f := novoReceitaFixture()

	_, err := f.svc.Criar(context.Background(), f.empresaID, dto.CriarReceitaRequest{
		Nome:       "Zerada",
		PrecoVenda: dec("10.00"),
		Componentes: []dto.ComponenteRequest{
			{InsumoID: strPtr(f.farinhaID.String()), Quantidade: dec("0")},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positiva")
}

func TestAddComponente_AutoReferenciaDireta(t *testing.T) {
	f := novoReceitaFixture()

	_, err := f.svc.AddComponente(context.Background(), f.molhoID, dto.ComponenteRequest{
		ReceitaFilhaID: strPtr(f.molhoID.String()),
		Quantidade:     dec("1"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "si mesma")
}

func TestAddComponente_ReceitaFilhaValida(t *testing.T) {
	f := novoReceitaFixture()

	resp, err := f.svc.Criar(context.Background(), f.empresaID, dto.CriarReceitaRequest{
		Nome:       "Lasanha",
		PrecoVenda: dec("40.00"),
	})
	require.NoError(t, err)

	atualizado, err := f.svc.AddComponente(context.Background(), uuid.MustParse(resp.ID), dto.ComponenteRequest{
		ReceitaFilhaID: strPtr(f.molhoID.String()),
		Quantidade:     dec("2"),
	})
	require.NoError(t, err)
	require.Len(t, atualizado.Componentes, 1)
	assert.Equal(t, f.molhoID.String(), *atualizado.Componentes[0].ReceitaFilhaID)
}

func TestCriarReceita_ComponenteDeOutraEmpresa(t *testing.T) {
	f := novoReceitaFixture()

	outraEmpresa := uuid.New()
	_, err := f.svc.Criar(context.Background(), outraEmpresa, dto.CriarReceitaRequest{
		Nome:       "Alheia",
		PrecoVenda: dec("10.00"),
		Componentes: []dto.ComponenteRequest{
			{InsumoID: strPtr(f.farinhaID.String()), Quantidade: dec("1")},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nao encontrado")
}

package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/dto"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/pricing"
)

// pedidoFixture wires a small menu through the in-memory stubs:
//
//	burger (produto, 20.00) ── vínculo "Adicionais" (opcional, quantitativo,
//	    max 3): bacon (override 3.00), queijo (2.00)
//	xsalada (produto, 18.00) ── vínculo "Ponto" (obrigatório, escolha única)
//	combo "Combo Kids" (base 30.00) ── seção "Bebida" (obrigatória):
//	    refri (+0.00), suco (+2.00)
type pedidoFixture struct {
	svc       PedidoService
	pedidos   *stubPedidoRepo
	empresaID uuid.UUID

	burgerID, xsaladaID, comboID      uuid.UUID
	vinculoAdicionaisID, vinculoPontoID uuid.UUID
	baconItemID, queijoItemID         uuid.UUID
	pontoMalID                        uuid.UUID
	secaoBebidaID                     uuid.UUID
	refriOpcaoID, sucoOpcaoID         uuid.UUID
}

func novoPedidoFixture() *pedidoFixture {
	f := &pedidoFixture{
		empresaID:           uuid.New(),
		burgerID:            uuid.New(),
		xsaladaID:           uuid.New(),
		comboID:             uuid.New(),
		vinculoAdicionaisID: uuid.New(),
		vinculoPontoID:      uuid.New(),
		baconItemID:         uuid.New(),
		queijoItemID:        uuid.New(),
		pontoMalID:          uuid.New(),
		secaoBebidaID:       uuid.New(),
		refriOpcaoID:        uuid.New(),
		sucoOpcaoID:         uuid.New(),
	}

	baconProdutoID := uuid.New()
	queijoProdutoID := uuid.New()
	pontoProdutoID := uuid.New()
	refriProdutoID := uuid.New()
	sucoProdutoID := uuid.New()

	produtos := map[uuid.UUID]*model.Produto{
		f.burgerID:      {ID: f.burgerID, EmpresaID: f.empresaID, Nome: "X-Burger", PrecoVenda: dec("20.00"), Ativo: true, Disponivel: true},
		f.xsaladaID:     {ID: f.xsaladaID, EmpresaID: f.empresaID, Nome: "X-Salada", PrecoVenda: dec("18.00"), Ativo: true, Disponivel: true},
		baconProdutoID:  {ID: baconProdutoID, EmpresaID: f.empresaID, Nome: "Bacon", PrecoVenda: dec("4.00"), Ativo: true, Disponivel: true},
		queijoProdutoID: {ID: queijoProdutoID, EmpresaID: f.empresaID, Nome: "Queijo", PrecoVenda: dec("2.00"), Ativo: true, Disponivel: true},
		pontoProdutoID:  {ID: pontoProdutoID, EmpresaID: f.empresaID, Nome: "Mal passado", PrecoVenda: dec("0.00"), Ativo: true, Disponivel: true},
		refriProdutoID:  {ID: refriProdutoID, EmpresaID: f.empresaID, Nome: "Refrigerante", PrecoVenda: dec("6.00"), Ativo: true, Disponivel: true},
		sucoProdutoID:   {ID: sucoProdutoID, EmpresaID: f.empresaID, Nome: "Suco", PrecoVenda: dec("8.00"), Ativo: true, Disponivel: true},
	}

	catalogo := novoCatalogoStub()
	catalogo.produtos = produtos
	catalogo.combos[f.comboID] = &model.Combo{ID: f.comboID, EmpresaID: f.empresaID, Nome: "Combo Kids", PrecoBase: dec("30.00"), Ativo: true}
	engine := pricing.New(catalogo)

	adicionaisID := uuid.New()
	pontoID := uuid.New()
	override := dec("3.00")
	max3 := 3

	complementoRepo := &stubComplementoRepo{
		vinculos: map[uuid.UUID][]model.ComplementoVinculo{
			f.burgerID: {{
				ID:            f.vinculoAdicionaisID,
				ComplementoID: adicionaisID,
				ProdutoID:     &f.burgerID,
				Quantitativo:  true,
				MaxItens:      &max3,
				Complemento:   &model.Complemento{ID: adicionaisID, Nome: "Adicionais"},
			}},
			f.xsaladaID: {{
				ID:            f.vinculoPontoID,
				ComplementoID: pontoID,
				ProdutoID:     &f.xsaladaID,
				Obrigatorio:   true,
				Complemento:   &model.Complemento{ID: pontoID, Nome: "Ponto da carne"},
			}},
		},
		itens: map[uuid.UUID][]model.ComplementoItem{
			adicionaisID: {
				{ID: f.baconItemID, ComplementoID: adicionaisID, ProdutoID: &baconProdutoID, PrecoOverride: &override},
				{ID: f.queijoItemID, ComplementoID: adicionaisID, ProdutoID: &queijoProdutoID},
			},
			pontoID: {
				{ID: f.pontoMalID, ComplementoID: pontoID, ProdutoID: &pontoProdutoID},
			},
		},
	}

	comboRepo := &stubComboRepo{
		combos: map[uuid.UUID]*model.Combo{
			f.comboID: catalogo.combos[f.comboID],
		},
		secoes: map[uuid.UUID][]model.ComboSecao{
			f.comboID: {{
				ID:          f.secaoBebidaID,
				ComboID:     f.comboID,
				Nome:        "Bebida",
				Obrigatoria: true,
				Itens: []model.ComboSecaoItem{
					{ID: f.refriOpcaoID, SecaoID: f.secaoBebidaID, ProdutoID: &refriProdutoID, PrecoIncremental: dec("0.00"), QuantidadeMin: 1, QuantidadeMax: 1, Produto: produtos[refriProdutoID]},
					{ID: f.sucoOpcaoID, SecaoID: f.secaoBebidaID, ProdutoID: &sucoProdutoID, PrecoIncremental: dec("2.00"), QuantidadeMin: 1, QuantidadeMax: 1, Produto: produtos[sucoProdutoID]},
				},
			}},
		},
	}

	f.pedidos = novoStubPedidoRepo()
	f.svc = NewPedidoService(
		f.pedidos,
		&stubProdutoRepo{produtos: produtos},
		&stubReceitaRepo{receitas: map[uuid.UUID]*model.Receita{}},
		comboRepo,
		complementoRepo,
		engine,
		nil,
	)
	return f
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

func TestRegistrarPedido_ProdutoComAdicionais(t *testing.T) {
	f := novoPedidoFixture()

	resp, err := f.svc.RegistrarPedido(context.Background(), f.empresaID, dto.RegistrarPedidoRequest{
		ClienteNome: strPtr("Ana"),
		Itens: []dto.ItemPedidoRequest{{
			ProdutoID:  strPtr(f.burgerID.String()),
			Quantidade: 2,
			Grupos: []dto.GrupoSelecaoRequest{{
				VinculoID: strPtr(f.vinculoAdicionaisID.String()),
				Selecoes: []dto.SelecaoRequest{
					{OpcaoID: f.baconItemID.String(), Quantidade: 2},
				},
			}},
		}},
	})
	require.NoError(t, err)

	// (20.00 + 2×3.00) × 2 = 52.00
	assert.Equal(t, 1, resp.Numero)
	require.Len(t, resp.Itens, 1)
	assert.Equal(t, "X-Burger", resp.Itens[0].Nome)
	assert.True(t, resp.Itens[0].PrecoUnitario.Equal(dec("20.00")))
	assert.True(t, resp.Itens[0].PrecoSelecoes.Equal(dec("6.00")))
	assert.True(t, resp.Itens[0].TotalLinha.Equal(dec("52.00")))
	assert.True(t, resp.Total.Equal(dec("52.00")))

	require.Len(t, resp.Itens[0].Selecoes, 1)
	assert.Equal(t, "Bacon", resp.Itens[0].Selecoes[0].Nome)
	assert.Equal(t, 2, resp.Itens[0].Selecoes[0].Quantidade)
}

func TestRegistrarPedido_GrupoObrigatorioOmitidoRejeita(t *testing.T) {
	f := novoPedidoFixture()

	// O vínculo "Ponto da carne" é obrigatório e não veio na requisição:
	// ele ainda é validado, contra uma escolha vazia.
	_, err := f.svc.RegistrarPedido(context.Background(), f.empresaID, dto.RegistrarPedidoRequest{
		Itens: []dto.ItemPedidoRequest{{
			ProdutoID:  strPtr(f.xsaladaID.String()),
			Quantidade: 1,
		}},
	})
	require.Error(t, err)
	sel, ok := pricing.AsErroSelecao(err)
	require.True(t, ok)
	assert.Equal(t, pricing.SelecaoObrigatoriaNaoAtendida, sel.Codigo)
	assert.Empty(t, f.pedidos.pedidos)
}

func TestRegistrarPedido_ComboComSecao(t *testing.T) {
	f := novoPedidoFixture()

	resp, err := f.svc.RegistrarPedido(context.Background(), f.empresaID, dto.RegistrarPedidoRequest{
		Itens: []dto.ItemPedidoRequest{{
			ComboID:    strPtr(f.comboID.String()),
			Quantidade: 1,
			Grupos: []dto.GrupoSelecaoRequest{{
				SecaoID: strPtr(f.secaoBebidaID.String()),
				Selecoes: []dto.SelecaoRequest{
					{OpcaoID: f.sucoOpcaoID.String(), Quantidade: 1},
				},
			}},
		}},
	})
	require.NoError(t, err)

	// 30.00 base + 2.00 incremental do suco
	require.Len(t, resp.Itens, 1)
	assert.True(t, resp.Itens[0].TotalLinha.Equal(dec("32.00")))
	require.Len(t, resp.Itens[0].Selecoes, 1)
	assert.Equal(t, "Suco", resp.Itens[0].Selecoes[0].Nome)
}

func TestRegistrarPedido_GrupoDesconhecidoRejeita(t *testing.T) {
	f := novoPedidoFixture()

	_, err := f.svc.RegistrarPedido(context.Background(), f.empresaID, dto.RegistrarPedidoRequest{
		Itens: []dto.ItemPedidoRequest{{
			ProdutoID:  strPtr(f.burgerID.String()),
			Quantidade: 1,
			Grupos: []dto.GrupoSelecaoRequest{{
				VinculoID: strPtr(uuid.NewString()),
			}},
		}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nao esta vinculado")
}

func TestRegistrarPedido_BaseAmbiguaRejeita(t *testing.T) {
	f := novoPedidoFixture()

	_, err := f.svc.RegistrarPedido(context.Background(), f.empresaID, dto.RegistrarPedidoRequest{
		Itens: []dto.ItemPedidoRequest{{
			ProdutoID:  strPtr(f.burgerID.String()),
			ComboID:    strPtr(f.comboID.String()),
			Quantidade: 1,
		}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exatamente um")
}

func TestRegistrarPedido_ProdutoIndisponivelRejeita(t *testing.T) {
	f := novoPedidoFixture()

	outraEmpresa := uuid.New()
	_, err := f.svc.RegistrarPedido(context.Background(), outraEmpresa, dto.RegistrarPedidoRequest{
		Itens: []dto.ItemPedidoRequest{{
			ProdutoID:  strPtr(f.burgerID.String()),
			Quantidade: 1,
		}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nao encontrado")
}

func TestRegistrarPedido_NumeroSequencial(t *testing.T) {
	f := novoPedidoFixture()

	pedir := func() *dto.PedidoResponse {
		resp, err := f.svc.RegistrarPedido(context.Background(), f.empresaID, dto.RegistrarPedidoRequest{
			Itens: []dto.ItemPedidoRequest{{
				ProdutoID:  strPtr(f.burgerID.String()),
				Quantidade: 1,
				Grupos: []dto.GrupoSelecaoRequest{{
					VinculoID: strPtr(f.vinculoAdicionaisID.String()),
				}},
			}},
		})
		require.NoError(t, err)
		return resp
	}

	assert.Equal(t, 1, pedir().Numero)
	assert.Equal(t, 2, pedir().Numero)
	assert.Equal(t, 3, pedir().Numero)
}

func TestCancelarPedido(t *testing.T) {
	f := novoPedidoFixture()

	resp, err := f.svc.RegistrarPedido(context.Background(), f.empresaID, dto.RegistrarPedidoRequest{
		Itens: []dto.ItemPedidoRequest{{
			ProdutoID:  strPtr(f.burgerID.String()),
			Quantidade: 1,
		}},
	})
	require.NoError(t, err)

	id := uuid.MustParse(resp.ID)
	require.NoError(t, f.svc.CancelarPedido(context.Background(), id, "cliente desistiu"))

	buscado, err := f.svc.Buscar(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "cancelado", buscado.Estado)

	err = f.svc.CancelarPedido(context.Background(), id, "de novo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ja esta cancelado")
}

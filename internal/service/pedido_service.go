package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/dto"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/pricing"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/repository"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/worker"
)

type PedidoService interface {
	RegistrarPedido(ctx context.Context, empresaID uuid.UUID, req dto.RegistrarPedidoRequest) (*dto.PedidoResponse, error)
	CancelarPedido(ctx context.Context, id uuid.UUID, motivo string) error
	Buscar(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	Listar(ctx context.Context, empresaID uuid.UUID, filter dto.PedidoFilter) (*dto.PedidoListResponse, error)
}

type pedidoService struct {
	repo            repository.PedidoRepository
	produtoRepo     repository.ProdutoRepository
	receitaRepo     repository.ReceitaRepository
	comboRepo       repository.ComboRepository
	complementoRepo repository.ComplementoRepository
	engine          *pricing.Engine
	dispatcher      *worker.Dispatcher
}

func NewPedidoService(
	repo repository.PedidoRepository,
	produtoRepo repository.ProdutoRepository,
	receitaRepo repository.ReceitaRepository,
	comboRepo repository.ComboRepository,
	complementoRepo repository.ComplementoRepository,
	engine *pricing.Engine,
	dispatcher *worker.Dispatcher,
) PedidoService {
	return &pedidoService{
		repo:            repo,
		produtoRepo:     produtoRepo,
		receitaRepo:     receitaRepo,
		comboRepo:       comboRepo,
		complementoRepo: complementoRepo,
		engine:          engine,
		dispatcher:      dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// linhaResolvida carries one fully priced line between the pricing pass and
// the persistence transaction.
type linhaResolvida struct {
	item     model.PedidoItem
	selecoes []dto.SelecaoResponse
}

// ── RegistrarPedido ──────────────────────────────────────────────────────────
// Pricing is all-or-nothing and happens entirely before the transaction:
//   1. Resolve each line's base item (exists, same empresa, available)
//   2. Assemble EVERY attached selection group — vínculos of the base and,
//      for combos, the combo's sections. Groups the customer skipped are
//      validated against an empty choice, so required groups still reject.
//   3. Price each line through the engine; first rejection aborts the order
//   4. BEGIN TX: nextval numero, create pedido + itens
//   5. (async) dispatch comanda job

func (s *pedidoService) RegistrarPedido(ctx context.Context, empresaID uuid.UUID, req dto.RegistrarPedidoRequest) (*dto.PedidoResponse, error) {
	linhas := make([]linhaResolvida, 0, len(req.Itens))
	subtotal := decimal.Zero

	for i, itemReq := range req.Itens {
		linha, err := s.precificarItem(ctx, empresaID, itemReq)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		linhas = append(linhas, *linha)
		subtotal = subtotal.Add(linha.item.TotalLinha)
	}

	subtotal = pricing.Arredondar(subtotal)

	var pedido model.Pedido
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numero, err := s.repo.ProximoNumero(ctx, tx)
		if err != nil {
			return err
		}
		pedido = model.Pedido{
			EmpresaID:    empresaID,
			Numero:       numero,
			ClienteNome:  req.ClienteNome,
			ClienteEmail: req.ClienteEmail,
			Subtotal:     subtotal,
			Total:        subtotal,
			Estado:       "confirmado",
		}
		for _, l := range linhas {
			pedido.Itens = append(pedido.Itens, l.item)
		}
		return s.repo.Create(ctx, tx, &pedido)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async comanda job (best-effort — fire & forget)
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueComanda(ctx, worker.ComandaJobPayload{
			PedidoID:     pedido.ID.String(),
			ClienteEmail: req.ClienteEmail,
		})
	}

	resp := pedidoToResponse(&pedido)
	for i := range linhas {
		resp.Itens[i].Selecoes = linhas[i].selecoes
	}
	return resp, nil
}

// precificarItem resolves one order line end to end: base item, every
// attached selection group, then the engine.
func (s *pedidoService) precificarItem(ctx context.Context, empresaID uuid.UUID, req dto.ItemPedidoRequest) (*linhaResolvida, error) {
	base, nome, err := s.resolverBase(ctx, empresaID, req)
	if err != nil {
		return nil, err
	}

	grupos, escolhidas, err := s.montarGrupos(ctx, base, req.Grupos)
	if err != nil {
		return nil, err
	}

	linha, err := s.engine.PrecificarLinha(ctx, base, req.Quantidade, grupos)
	if err != nil {
		return nil, err
	}

	snapshot, err := json.Marshal(escolhidas)
	if err != nil {
		return nil, err
	}

	item := model.PedidoItem{
		NomeItem:      nome,
		Quantidade:    req.Quantidade,
		PrecoUnitario: pricing.Arredondar(linha.PrecoUnitario),
		PrecoSelecoes: pricing.Arredondar(linha.PrecoSelecoes),
		TotalLinha:    pricing.Arredondar(linha.TotalLinha),
		Selecoes:      string(snapshot),
	}
	switch base.Kind {
	case pricing.KindProduto:
		item.ProdutoID = &base.ID
	case pricing.KindReceita:
		item.ReceitaID = &base.ID
	case pricing.KindCombo:
		item.ComboID = &base.ID
	}

	return &linhaResolvida{item: item, selecoes: escolhidas}, nil
}

// resolverBase enforces the exactly-one base reference and availability.
func (s *pedidoService) resolverBase(ctx context.Context, empresaID uuid.UUID, req dto.ItemPedidoRequest) (pricing.Ref, string, error) {
	produtoID, err := parseUUIDPtr(req.ProdutoID)
	if err != nil {
		return pricing.Ref{}, "", fmt.Errorf("produto_id invalido: %w", err)
	}
	receitaID, err := parseUUIDPtr(req.ReceitaID)
	if err != nil {
		return pricing.Ref{}, "", fmt.Errorf("receita_id invalido: %w", err)
	}
	comboID, err := parseUUIDPtr(req.ComboID)
	if err != nil {
		return pricing.Ref{}, "", fmt.Errorf("combo_id invalido: %w", err)
	}

	refs := 0
	var base pricing.Ref
	if produtoID != nil {
		base = pricing.Ref{Kind: pricing.KindProduto, ID: *produtoID}
		refs++
	}
	if receitaID != nil {
		base = pricing.Ref{Kind: pricing.KindReceita, ID: *receitaID}
		refs++
	}
	if comboID != nil {
		base = pricing.Ref{Kind: pricing.KindCombo, ID: *comboID}
		refs++
	}
	if refs != 1 {
		return pricing.Ref{}, "", errors.New("item deve referenciar exatamente um de produto, receita ou combo")
	}

	switch base.Kind {
	case pricing.KindProduto:
		p, err := s.produtoRepo.FindByID(ctx, base.ID)
		if err != nil || p.EmpresaID != empresaID {
			return pricing.Ref{}, "", errors.New("produto nao encontrado")
		}
		if !p.Ativo || !p.Disponivel {
			return pricing.Ref{}, "", errors.New("produto indisponivel")
		}
		return base, p.Nome, nil
	case pricing.KindReceita:
		r, err := s.receitaRepo.FindByID(ctx, base.ID)
		if err != nil || r.EmpresaID != empresaID {
			return pricing.Ref{}, "", errors.New("receita nao encontrada")
		}
		if !r.Ativo || !r.Disponivel {
			return pricing.Ref{}, "", errors.New("receita indisponivel")
		}
		return base, r.Nome, nil
	default:
		c, err := s.comboRepo.FindByID(ctx, base.ID)
		if err != nil || c.EmpresaID != empresaID {
			return pricing.Ref{}, "", errors.New("combo nao encontrado")
		}
		if !c.Ativo {
			return pricing.Ref{}, "", errors.New("combo indisponivel")
		}
		return base, c.Nome, nil
	}
}

var colunaDoPai = map[pricing.Kind]string{
	pricing.KindProduto: "produto_id",
	pricing.KindReceita: "receita_id",
	pricing.KindCombo:   "combo_id",
}

// montarGrupos assembles every selection group attached to the base: the
// complemento vínculos of the parent and, for combos, the combo's sections.
// The customer's choices are matched by group id; an absent group validates
// against an empty choice set. A request group that is not attached to the
// base is rejected.
func (s *pedidoService) montarGrupos(ctx context.Context, base pricing.Ref, reqGrupos []dto.GrupoSelecaoRequest) ([]pricing.GrupoSelecao, []dto.SelecaoResponse, error) {
	escolhaPorGrupo := make(map[uuid.UUID]pricing.Selecao, len(reqGrupos))
	for _, g := range reqGrupos {
		vinculoID, err := parseUUIDPtr(g.VinculoID)
		if err != nil {
			return nil, nil, fmt.Errorf("vinculo_id invalido: %w", err)
		}
		secaoID, err := parseUUIDPtr(g.SecaoID)
		if err != nil {
			return nil, nil, fmt.Errorf("secao_id invalido: %w", err)
		}
		if (vinculoID == nil) == (secaoID == nil) {
			return nil, nil, errors.New("grupo deve referenciar exatamente um de vinculo ou secao")
		}
		grupoID := secaoID
		if vinculoID != nil {
			grupoID = vinculoID
		}
		escolha := make(pricing.Selecao, len(g.Selecoes))
		for _, sel := range g.Selecoes {
			opcaoID, err := uuid.Parse(sel.OpcaoID)
			if err != nil {
				return nil, nil, fmt.Errorf("opcao_id invalido: %w", err)
			}
			escolha[opcaoID] += sel.Quantidade
		}
		if _, dup := escolhaPorGrupo[*grupoID]; dup {
			return nil, nil, errors.New("grupo repetido na selecao")
		}
		escolhaPorGrupo[*grupoID] = escolha
	}

	var grupos []pricing.GrupoSelecao
	var escolhidas []dto.SelecaoResponse
	conhecidos := make(map[uuid.UUID]bool)

	vinculos, err := s.complementoRepo.VinculosDoPai(ctx, colunaDoPai[base.Kind], base.ID)
	if err != nil {
		return nil, nil, err
	}
	for _, v := range vinculos {
		conhecidos[v.ID] = true
		grupo, nomes, err := s.grupoDoVinculo(ctx, v, escolhaPorGrupo[v.ID])
		if err != nil {
			return nil, nil, err
		}
		grupos = append(grupos, *grupo)
		escolhidas = append(escolhidas, nomes...)
	}

	if base.Kind == pricing.KindCombo {
		secoes, err := s.comboRepo.SecoesDoCombo(ctx, base.ID)
		if err != nil {
			return nil, nil, err
		}
		for _, sec := range secoes {
			conhecidos[sec.ID] = true
			grupo, nomes := s.grupoDaSecao(sec, escolhaPorGrupo[sec.ID])
			grupos = append(grupos, *grupo)
			escolhidas = append(escolhidas, nomes...)
		}
	}

	for grupoID := range escolhaPorGrupo {
		if !conhecidos[grupoID] {
			return nil, nil, fmt.Errorf("grupo %s nao esta vinculado ao item", grupoID)
		}
	}

	return grupos, escolhidas, nil
}

func (s *pedidoService) grupoDoVinculo(ctx context.Context, v model.ComplementoVinculo, escolha pricing.Selecao) (*pricing.GrupoSelecao, []dto.SelecaoResponse, error) {
	itens, err := s.complementoRepo.Itens(ctx, v.ComplementoID)
	if err != nil {
		return nil, nil, err
	}

	nome := ""
	if v.Complemento != nil {
		nome = v.Complemento.Nome
	}

	opcoes := make([]pricing.OpcaoSelecao, 0, len(itens))
	var snapshot []dto.SelecaoResponse
	for _, it := range itens {
		preco, err := s.engine.PrecoEfetivoDoComplementoItem(ctx, it)
		if err != nil {
			return nil, nil, err
		}
		// Complemento options carry no per-option bounds: the group's
		// quantitativo flag governs.
		opcoes = append(opcoes, pricing.OpcaoSelecao{ID: it.ID, Preco: preco, PermiteQuantidade: true})

		if qtd := escolha[it.ID]; qtd > 0 {
			snapshot = append(snapshot, dto.SelecaoResponse{
				OpcaoID:    it.ID.String(),
				Nome:       s.nomeDoItemComplemento(ctx, it),
				Quantidade: qtd,
				Preco:      preco,
			})
		}
	}

	grupo := &pricing.GrupoSelecao{
		Regras: pricing.RegrasSelecao{
			Nome:         nome,
			Obrigatorio:  v.Obrigatorio,
			Quantitativo: v.Quantitativo,
			MinItens:     v.MinItens,
			MaxItens:     v.MaxItens,
		},
		Opcoes:  opcoes,
		Escolha: escolha,
	}
	return grupo, snapshot, nil
}

func (s *pedidoService) grupoDaSecao(sec model.ComboSecao, escolha pricing.Selecao) (*pricing.GrupoSelecao, []dto.SelecaoResponse) {
	opcoes := make([]pricing.OpcaoSelecao, 0, len(sec.Itens))
	var snapshot []dto.SelecaoResponse
	for _, it := range sec.Itens {
		preco := pricing.PrecoEfetivoDoSecaoItem(it)
		opcoes = append(opcoes, pricing.OpcaoSelecao{
			ID:                it.ID,
			Preco:             preco,
			PermiteQuantidade: it.PermiteQuantidade,
			QuantidadeMin:     it.QuantidadeMin,
			QuantidadeMax:     it.QuantidadeMax,
		})
		if qtd := escolha[it.ID]; qtd > 0 {
			nome := ""
			switch {
			case it.Produto != nil:
				nome = it.Produto.Nome
			case it.Receita != nil:
				nome = it.Receita.Nome
			}
			snapshot = append(snapshot, dto.SelecaoResponse{
				OpcaoID:    it.ID.String(),
				Nome:       nome,
				Quantidade: qtd,
				Preco:      preco,
			})
		}
	}

	grupo := &pricing.GrupoSelecao{
		Regras: pricing.RegrasSelecao{
			Nome:         sec.Nome,
			Obrigatorio:  sec.Obrigatoria,
			Quantitativo: sec.Quantitativa,
			MinItens:     sec.MinItens,
			MaxItens:     sec.MaxItens,
		},
		Opcoes:  opcoes,
		Escolha: escolha,
	}
	return grupo, snapshot
}

func (s *pedidoService) nomeDoItemComplemento(ctx context.Context, it model.ComplementoItem) string {
	switch {
	case it.ProdutoID != nil:
		if p, err := s.produtoRepo.FindByID(ctx, *it.ProdutoID); err == nil {
			return p.Nome
		}
	case it.ReceitaID != nil:
		if r, err := s.receitaRepo.FindByID(ctx, *it.ReceitaID); err == nil {
			return r.Nome
		}
	case it.ComboID != nil:
		if c, err := s.comboRepo.FindByID(ctx, *it.ComboID); err == nil {
			return c.Nome
		}
	}
	return ""
}

// ── CancelarPedido ───────────────────────────────────────────────────────────

func (s *pedidoService) CancelarPedido(ctx context.Context, id uuid.UUID, motivo string) error {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("pedido nao encontrado")
	}
	if pedido.Estado == "cancelado" {
		return errors.New("pedido ja esta cancelado")
	}
	_ = motivo // registrado apenas em log pelo handler
	return s.repo.UpdateEstado(ctx, id, "cancelado")
}

func (s *pedidoService) Buscar(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pedido nao encontrado")
	}
	return pedidoToResponse(pedido), nil
}

func (s *pedidoService) Listar(ctx context.Context, empresaID uuid.UUID, filter dto.PedidoFilter) (*dto.PedidoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Estado == "" {
		filter.Estado = "confirmado"
	}
	pedidos, total, err := s.repo.List(ctx, empresaID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PedidoResponse, len(pedidos))
	for i := range pedidos {
		data[i] = *pedidoToResponse(&pedidos[i])
	}
	return &dto.PedidoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func pedidoToResponse(p *model.Pedido) *dto.PedidoResponse {
	itens := make([]dto.ItemPedidoResponse, 0, len(p.Itens))
	for _, item := range p.Itens {
		var selecoes []dto.SelecaoResponse
		if item.Selecoes != "" {
			_ = json.Unmarshal([]byte(item.Selecoes), &selecoes)
		}
		itens = append(itens, dto.ItemPedidoResponse{
			Nome:          item.NomeItem,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario,
			PrecoSelecoes: item.PrecoSelecoes,
			TotalLinha:    item.TotalLinha,
			Selecoes:      selecoes,
		})
	}
	return &dto.PedidoResponse{
		ID:           p.ID.String(),
		Numero:       p.Numero,
		ClienteNome:  p.ClienteNome,
		ClienteEmail: p.ClienteEmail,
		Itens:        itens,
		Subtotal:     p.Subtotal,
		Total:        p.Total,
		Estado:       p.Estado,
		CreatedAt:    p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

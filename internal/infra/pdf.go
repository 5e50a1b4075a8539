package infra

// pdf.go — Order slip (comanda) generation using go-pdf/fpdf.
// Generates A7-size thermal-style slips with the order number, timestamp,
// each priced line (name, quantity, line total) and the selections chosen
// for it, plus the bold total. Output goes to storagePath/comanda_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
)

// GerarComandaPDF writes the printable slip for a committed order.
// storagePath is created if needed. Returns the absolute path of the file.
func GerarComandaPDF(pedido *model.Pedido, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("comanda_%d.pdf", pedido.Numero)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "Mensura", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Comanda", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Pedido N° %d", pedido.Numero), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, pedido.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if pedido.ClienteNome != nil && *pedido.ClienteNome != "" {
		pdf.CellFormat(contentW, 4, "Cliente: "+*pedido.ClienteNome, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Item rows ─────────────────────────────────────────────────────────────
	col1 := contentW * 0.52 // item name
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.32 // line total

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qtd", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range pedido.Itens {
		nome := item.NomeItem
		if len(nome) > 22 {
			nome = nome[:21] + "…"
		}
		pdf.CellFormat(col1, 5, nome, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Quantidade), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "R$"+item.TotalLinha.StringFixed(2), "", 1, "R", false, 0, "")

		if !item.PrecoSelecoes.IsZero() {
			pdf.SetFont("Helvetica", "I", 6)
			pdf.CellFormat(col1+col2, 4, "  + selecoes", "", 0, "L", false, 0, "")
			pdf.CellFormat(col3, 4, "R$"+item.PrecoSelecoes.StringFixed(2)+"/un", "", 1, "R", false, 0, "")
			pdf.SetFont("Helvetica", "", 7)
		}
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Total ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "R$"+pedido.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Bom apetite!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

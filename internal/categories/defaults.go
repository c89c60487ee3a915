package categories

import "github.com/cofrinho-app/cofrinho/internal/model"

// Built-in fallback category ids.
const (
	OtherID  = "7"
	IncomeID = "8"
)

// DefaultDefaults returns the fallback ids used by the built-in table.
func DefaultDefaults() Defaults {
	return Defaults{ExpenseID: OtherID, IncomeID: IncomeID}
}

// DefaultCategories returns the built-in category table in declaration order.
// Order matters: the first category with a matching keyword wins.
func DefaultCategories() []model.Category {
	return []model.Category{
		{
			ID: "1", Name: "Alimentação", Icon: "Coffee", Style: style("orange"),
			Keywords: []string{"food", "ifood", "mercado", "restaurante", "lanche", "padaria", "açougue", "mcdonalds", "burger king", "bk", "almoço", "jantar", "café", "cafe"},
		},
		{
			ID: "2", Name: "Transporte", Icon: "Car", Style: style("blue"),
			Keywords: []string{"uber", "99", "gasolina", "posto", "onibus", "metrô", "estacionamento", "pedágio", "manutenção carro", "oficina", "mecanico"},
		},
		{
			ID: "3", Name: "Moradia", Icon: "Home", Style: style("indigo"),
			Keywords: []string{"aluguel", "condominio", "luz", "agua", "net", "internet", "energia", "iptu", "gás", "manutenção casa", "reforma"},
		},
		{
			ID: "4", Name: "Lazer", Icon: "Smartphone", Style: style("purple"),
			Keywords: []string{"cinema", "netflix", "spotify", "jogo", "show", "viagem", "bar", "cerveja", "festa", "ingresso", "games"},
		},
		{
			ID: "5", Name: "Saúde", Icon: "Heart", Style: style("rose"),
			Keywords: []string{"farmacia", "medico", "exame", "remedio", "fralda", "psicologo", "hospital", "dentista", "clinica", "terapia", "drogaria", "saude", "droga raia", "pague menos"},
		},
		{
			ID: "6", Name: "Compras", Icon: "ShoppingBag", Style: style("pink"),
			Keywords: []string{"amazon", "shopee", "roupa", "presente", "eletronico", "magalu", "mercadolivre", "loja", "vestuario", "calçado"},
		},
		{ID: OtherID, Name: "Outros", Icon: "HelpCircle", Style: style("gray")},
		{
			ID: IncomeID, Name: "Renda", Icon: "TrendingUp", Style: style("emerald"),
			Keywords: []string{"salario", "pix", "venda", "reembolso", "bonus", "dividendos", "rendimento"},
		},
	}
}

func style(color string) model.Style {
	return model.Style{Text: "text-" + color + "-400", Background: "bg-" + color + "-400"}
}

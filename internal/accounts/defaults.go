package accounts

import "github.com/kiala-nvumbi/DINK1/internal/model"

// DefaultChart returns the seeded chart of accounts of the Angolan general
// accounting plan (PGC). Seeded accounts use their code as ID and the eight
// classes are protected.
func DefaultChart() []model.Account {
	const (
		d = model.NatureDebit
		c = model.NatureCredit
		m = model.NatureMixed
	)
	return []model.Account{
		class("1", "Meios fixos e investimentos", d),
		sub("11", "Imobilizações corpóreas", d, "1"),
		sub("11.1", "Terrenos e recursos naturais", d, "11"),
		sub("11.1.1", "Terrenos em bruto", d, "11.1"),
		sub("11.2", "Edifícios e outras construções", d, "11"),
		sub("11.3", "Equipamento básico", d, "11"),
		sub("11.4", "Equipamento de carga e transporte", d, "11"),
		sub("11.5", "Equipamento administrativo", d, "11"),
		sub("12", "Imobilizações incorpóreas", d, "1"),
		sub("12.1", "Trespasses", d, "12"),
		sub("12.2", "Despesas de investigação e desenvolvimento", d, "12"),
		sub("13", "Investimentos financeiros", d, "1"),
		sub("14", "Imobilizações em curso", d, "1"),
		sub("18", "Amortizações acumuladas", c, "1"),
		sub("18.1", "Amort. Imob. corpóreas", c, "18"),
		sub("19", "Provisões para investimentos financeiros", c, "1"),

		class("2", "Existências", d),
		sub("21", "Compras", d, "2"),
		sub("21.1", "Matérias-primas, subsid. e consumo", d, "21"),
		sub("21.2", "Mercadorias", d, "21"),
		sub("22", "Matérias-primas, subsidiárias e de consumo", d, "2"),
		sub("23", "Produtos e trabalhos em curso", d, "2"),
		sub("24", "Produtos acabados e intermédios", d, "2"),
		sub("26", "Mercadorias", d, "2"),
		sub("29", "Provisão para depreciação de existências", c, "2"),

		class("3", "Terceiros", m),
		sub("31", "Clientes", m, "3"),
		sub("31.1", "Clientes - correntes", m, "31"),
		sub("31.8", "Clientes de cobrança duvidosa", m, "31"),
		sub("32", "Fornecedores", m, "3"),
		sub("32.1", "Fornecedores - correntes", m, "32"),
		sub("33", "Empréstimos", c, "3"),
		sub("34", "Estado", m, "3"),
		sub("34.3", "Imposto rendimento trabalho (IRT)", m, "34"),
		sub("34.5", "IVA", m, "34"),
		sub("34.5.1", "IVA suportado", m, "34.5"),
		sub("34.5.2", "IVA dedutível", m, "34.5"),
		sub("34.5.3", "IVA liquidado", m, "34.5"),
		sub("34.5.5", "IVA apuramento", m, "34.5"),
		sub("36", "Pessoal", m, "3"),
		sub("36.1", "Pessoal - remunerações", c, "36"),
		sub("37", "Outros valores a receber e a pagar", m, "3"),
		sub("38", "Provisões para cobranças duvidosas", c, "3"),

		class("4", "Meios monetários", d),
		sub("41", "Títulos negociáveis", d, "4"),
		sub("42", "Depósitos a prazo", d, "4"),
		sub("43", "Depósitos à ordem", d, "4"),
		sub("43.1", "Moeda nacional", d, "43"),
		sub("45", "Caixa", d, "4"),
		sub("45.1", "Fundo fixo", d, "45"),
		sub("49", "Provisões para aplicações de tesouraria", c, "4"),

		class("5", "Capital e reservas", c),
		sub("51", "Capital", c, "5"),
		sub("55", "Reservas legais", c, "5"),
		sub("58", "Reservas livres", c, "5"),

		class("6", "Proveitos e ganhos por natureza", c),
		sub("61", "Vendas", c, "6"),
		sub("61.1", "Produtos acabados e intermédios", c, "61"),
		sub("61.3", "Mercadorias", c, "61"),
		sub("62", "Prestações de serviços", c, "6"),
		sub("66", "Proveitos e ganhos financeiros gerais", c, "6"),

		class("7", "Custos e perdas por natureza", d),
		sub("71", "Custo das mercadorias vendidas e matérias consumidas", d, "7"),
		sub("72", "Custos com o pessoal", d, "7"),
		sub("72.2", "Remunerações - Pessoal", d, "72"),
		sub("73", "Amortizações do exercício", d, "7"),
		sub("75", "Outros custos e perdas operacionais", d, "7"),
		sub("75.2", "Fornecimentos e serviços de terceiros (FSE)", d, "75"),
		sub("75.2.11", "Água", d, "75.2"),
		sub("75.2.12", "Electricidade", d, "75.2"),
		sub("75.2.21", "Rendas e alugueres", d, "75.2"),
		sub("76", "Custos e perdas financeiros gerais", d, "7"),

		class("8", "Resultados", m),
		sub("81", "Resultados transitados", m, "8"),
		sub("82", "Resultados operacionais", m, "8"),
		sub("88", "Resultado líquido do exercício", m, "8"),
	}
}

func class(code, name string, nature model.Nature) model.Account {
	return model.Account{ID: code, Code: code, Name: name, Nature: nature, Protected: true}
}

func sub(code, name string, nature model.Nature, parent string) model.Account {
	return model.Account{ID: code, Code: code, Name: name, Nature: nature, ParentID: parent}
}

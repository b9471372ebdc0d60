package course

// SeedCourses is the fixed set of courses shipped with the application,
// always present for every user and shared read-only across sessions.
var SeedCourses = []Course{
	{
		ID:          "impostos-iniciantes",
		Title:       "Impostos para Iniciantes",
		Description: "Perca o medo da Receita Federal! Entenda os principais impostos que afetam sua vida e como eles funcionam.",
		Icon:        IconTax,
		Difficulty:  Beginner,
		Lessons: []Lesson{
			{
				Title: "O que são impostos?",
				Content: "Impostos são valores que pagamos ao governo para financiar serviços públicos como saúde, educação e segurança. Pense neles como uma contribuição de todos para o bem-estar da sociedade.\n\n" +
					"Existem diferentes tipos de impostos: federais (como o Imposto de Renda), estaduais (como o IPVA do seu carro) e municipais (como o IPTU da sua casa).\n\n" +
					"Entender essa divisão é o primeiro passo para saber para onde seu dinheiro vai e como ele é usado para manter o país funcionando.",
				Quiz: []QuizQuestion{
					{Question: "Para que servem os impostos?", Options: []string{"Para enriquecer os políticos", "Para financiar serviços públicos", "Para pagar a conta de luz do presidente", "Para construir shoppings"}, CorrectAnswerIndex: 1},
					{Question: "Qual destes é um imposto municipal?", Options: []string{"Imposto de Renda", "IPVA", "IPTU", "IOF"}, CorrectAnswerIndex: 2},
					{Question: "Quem cobra o Imposto de Renda?", Options: []string{"A prefeitura", "O governo do estado", "O governo federal", "A escola do seu bairro"}, CorrectAnswerIndex: 2},
				},
			},
			{
				Title: "Imposto de Renda (IRPF)",
				Content: "O Imposto de Renda de Pessoa Física (IRPF) é um dos mais conhecidos. Ele incide sobre a sua renda, como salários, aluguéis e investimentos. A cada ano, você precisa \"prestar contas\" ao governo através da Declaração de IRPF.\n\n" +
					"Nem todo mundo precisa declarar. Existem regras de isenção, geralmente baseadas no total de rendimentos que você teve no ano anterior. Quem ganha abaixo de um certo teto, por exemplo, não precisa se preocupar.\n\n" +
					"Na declaração, você informa tudo o que ganhou e também pode deduzir alguns gastos, como despesas com saúde e educação. Isso pode diminuir o valor do imposto a pagar ou até gerar uma restituição (dinheiro de volta!).",
				Quiz: []QuizQuestion{
					{Question: "Sobre o que o IRPF incide?", Options: []string{"Apenas sobre salários", "Sobre sua renda (salários, aluguéis, etc.)", "Apenas sobre prêmios de loteria", "Sobre o valor do seu carro"}, CorrectAnswerIndex: 1},
					{Question: "O que pode diminuir o valor do Imposto de Renda a pagar?", Options: []string{"Gastos com viagens", "Gastos com saúde e educação", "Comprar um celular novo", "Fazer compras no supermercado"}, CorrectAnswerIndex: 1},
					{Question: "O que é \"restituição\" do IRPF?", Options: []string{"Uma multa por atraso", "Um imposto extra", "O dinheiro que o governo te devolve", "O nome do formulário de declaração"}, CorrectAnswerIndex: 2},
				},
			},
			{
				Title: "Impostos sobre o Consumo",
				Content: "Você paga impostos todos os dias, mesmo sem perceber! Eles estão \"embutidos\" nos preços dos produtos e serviços que você consome. Os principais são o ICMS (estadual) e o ISS (municipal).\n\n" +
					"O ICMS (Imposto sobre Circulação de Mercadorias e Serviços) está presente em quase tudo que você compra, desde um pão na padaria até um eletrodoméstico. Cada estado tem sua própria alíquota (percentual).\n\n" +
					"Já o ISS (Imposto Sobre Serviços) incide sobre serviços como cabeleireiro, academia, cinema, etc. Quando você vê a nota fiscal de um serviço, parte daquele valor é destinada a esse imposto para o município.",
				Quiz: []QuizQuestion{
					{Question: "Onde encontramos os impostos sobre o consumo?", Options: []string{"Apenas na declaração de IRPF", "Embutidos nos preços de produtos e serviços", "Apenas na conta de luz", "Somente em compras internacionais"}, CorrectAnswerIndex: 1},
					{Question: "Qual imposto incide sobre um corte de cabelo?", Options: []string{"IPVA", "IPTU", "ICMS", "ISS"}, CorrectAnswerIndex: 3},
					{Question: "O ICMS é um imposto cobrado por quem?", Options: []string{"Pelo município", "Pelo estado", "Pela União", "Pela loja"}, CorrectAnswerIndex: 1},
				},
			},
		},
	},
	{
		ID:          "investimentos-zero",
		Title:       "Como Investir do Zero",
		Description: "Descubra que investir não é um bicho de sete cabeças. Aprenda os conceitos básicos para fazer seu dinheiro render.",
		Icon:        IconInvestment,
		Difficulty:  Beginner,
		Lessons: []Lesson{
			{
				Title: "Por que investir?",
				Content: "Investir é o ato de aplicar seu dinheiro hoje para que ele cresça e trabalhe para você no futuro. É diferente de poupar, que é apenas guardar. Ao investir, você busca uma rentabilidade que supere a inflação, garantindo que seu poder de compra aumente com o tempo.\n\n" +
					"Os objetivos para investir são variados: comprar uma casa, fazer uma viagem, garantir uma aposentadoria tranquila ou simplesmente construir um patrimônio. Ter um objetivo claro ajuda a definir a melhor estratégia.\n\n" +
					"O maior aliado do investidor é o tempo. Graças aos juros compostos (juros sobre juros), quanto antes você começar, mesmo com pouco dinheiro, maior será o resultado lá na frente. O importante é dar o primeiro passo!",
				Quiz: []QuizQuestion{
					{Question: "Qual a principal diferença entre poupar e investir?", Options: []string{"Poupar é mais arriscado", "Investir busca rentabilidade para o dinheiro crescer", "Poupar rende mais que investir", "Não há diferença"}, CorrectAnswerIndex: 1},
					{Question: "O que são os \"juros compostos\"?", Options: []string{"Uma taxa extra cobrada pelo banco", "Juros que rendem apenas sobre o valor inicial", "Juros que rendem sobre o valor inicial e sobre os juros já acumulados", "Um tipo de imposto"}, CorrectAnswerIndex: 2},
					{Question: "Por que é importante ter um objetivo ao investir?", Options: []string{"Para se gabar para os amigos", "Porque o gerente do banco exige", "Para ajudar a definir a melhor estratégia de investimento", "Para pagar menos impostos"}, CorrectAnswerIndex: 2},
				},
			},
			{
				Title: "Renda Fixa vs. Renda Variável",
				Content: "Os investimentos se dividem em duas grandes categorias: Renda Fixa e Renda Variável. Entender a diferença é fundamental.\n\n" +
					"**Renda Fixa:** É como emprestar dinheiro para alguém (governo, bancos ou empresas) e saber, no momento da aplicação, qual será a regra de remuneração. É considerada mais segura e previsível. Exemplos: Tesouro Direto, CDBs e LCIs.\n\n" +
					"**Renda Variável:** Aqui, a rentabilidade não é previsível. O valor do seu investimento pode variar muito, tanto para cima quanto para baixo. O potencial de ganho é maior, mas o risco também. O exemplo mais famoso são as Ações de empresas na Bolsa de Valores.",
				Quiz: []QuizQuestion{
					{Question: "Qual categoria de investimento é considerada mais segura e previsível?", Options: []string{"Renda Variável", "Renda Mista", "Renda Fixa", "Renda Alternativa"}, CorrectAnswerIndex: 2},
					{Question: "Comprar uma Ação na Bolsa de Valores é um exemplo de:", Options: []string{"Renda Fixa", "Poupança", "Renda Variável", "Tesouro Direto"}, CorrectAnswerIndex: 2},
					{Question: "Ao investir em um CDB, você está emprestando dinheiro para quem?", Options: []string{"Para o governo", "Para um banco", "Para outra pessoa", "Para a Bolsa de Valores"}, CorrectAnswerIndex: 1},
				},
			},
			{
				Title: "Primeiros Passos: A Reserva de Emergência",
				Content: "Antes de pensar em investimentos arrojados, o primeiro passo de todo investidor é construir a Reserva de Emergência. É um dinheiro guardado para imprevistos, como uma despesa médica ou a perda do emprego.\n\n" +
					"O ideal é que essa reserva cubra de 6 a 12 meses do seu custo de vida mensal. Se você gasta R$ 2.000 por mês, sua reserva deve ser entre R$ 12.000 e R$ 24.000.\n\n" +
					"Esse dinheiro deve ser aplicado em um investimento de Renda Fixa muito seguro e com liquidez diária (que você possa resgatar a qualquer momento sem perdas). Boas opções são o Tesouro Selic ou um CDB de liquidez diária que pague 100% do CDI.",
				Quiz: []QuizQuestion{
					{Question: "Qual o principal objetivo da Reserva de Emergência?", Options: []string{"Ficar rico rapidamente", "Cobrir custos de imprevistos", "Comprar um carro novo", "Especular na bolsa"}, CorrectAnswerIndex: 1},
					{Question: "Onde se deve investir a Reserva de Emergência?", Options: []string{"Em Ações de alto risco", "Em um investimento seguro e de fácil resgate", "Na poupança, pois é a única opção", "Em criptomoedas"}, CorrectAnswerIndex: 1},
					{Question: "Quantos meses do seu custo de vida a reserva deve cobrir, idealmente?", Options: []string{"1 mês", "2 a 3 meses", "6 a 12 meses", "24 meses"}, CorrectAnswerIndex: 2},
				},
			},
		},
	},
	{
		ID:          "orcamento-pessoal",
		Title:       "Criando um Orçamento Pessoal",
		Description: "Assuma o controle do seu dinheiro. Aprenda a criar um orçamento que funciona para você e alcance seus objetivos.",
		Icon:        IconBudget,
		Difficulty:  Beginner,
		Lessons: []Lesson{
			{
				Title: "Para onde vai seu dinheiro?",
				Content: "O primeiro passo para criar um orçamento é saber exatamente quanto você ganha e quanto gasta. Parece simples, mas muitas pessoas não têm essa clareza. Durante um mês, anote **todas** as suas despesas, desde o aluguel até o cafezinho.\n\n" +
					"Você pode usar um caderno, uma planilha ou um aplicativo de celular. O importante é registrar tudo. Isso vai te dar um \"mapa\" da sua vida financeira.\n\n" +
					"Ao final do mês, separe os gastos por categorias, como: Moradia, Alimentação, Transporte, Lazer, etc. Você pode se surpreender ao descobrir para onde seu dinheiro está realmente indo.",
				Quiz: []QuizQuestion{
					{Question: "Qual o primeiro passo para criar um orçamento?", Options: []string{"Cortar todos os gastos com lazer", "Saber quanto você ganha e gasta", "Pedir um aumento", "Investir na bolsa"}, CorrectAnswerIndex: 1},
					{Question: "Por que é útil categorizar os gastos?", Options: []string{"Para o gerente do banco ver", "Para mostrar para os amigos", "Para identificar para onde o dinheiro está indo", "Porque o aplicativo obriga"}, CorrectAnswerIndex: 2},
					{Question: "Qual ferramenta NÃO é útil para registrar gastos?", Options: []string{"Caderno", "Planilha", "Aplicativo de finanças", "Apenas a memória"}, CorrectAnswerIndex: 3},
				},
			},
			{
				Title: "Montando seu Orçamento",
				Content: "Com o mapa de gastos em mãos, é hora de montar o orçamento. Um método popular é o 50/30/20. Ele sugere dividir sua renda líquida (o que sobra após os impostos) da seguinte forma:\n\n" +
					"* **50% para Gastos Essenciais:** Aluguel, contas de luz e água, supermercado, transporte, saúde. Tudo o que é indispensável para viver.\n" +
					"* **30% para Gastos Pessoais (Desejos):** Lazer, restaurantes, streaming, compras, viagens. Tudo o que torna a vida mais divertida.\n" +
					"* **20% para Metas Financeiras:** Pagar dívidas, investir, guardar para a aposentadoria ou para a reserva de emergência.",
				Quiz: []QuizQuestion{
					{Question: "No método 50/30/20, o que os 50% representam?", Options: []string{"Investimentos", "Lazer", "Gastos Essenciais", "Poupança"}, CorrectAnswerIndex: 2},
					{Question: "Ir ao cinema entra em qual categoria do método 50/30/20?", Options: []string{"Essenciais (50%)", "Pessoais/Desejos (30%)", "Metas Financeiras (20%)", "Nenhuma das anteriores"}, CorrectAnswerIndex: 1},
					{Question: "A parcela de 20% deve ser prioritariamente usada para quê?", Options: []string{"Compras no shopping", "Pagar dívidas e investir", "Jantar fora com mais frequência", "Assinar mais serviços de streaming"}, CorrectAnswerIndex: 1},
				},
			},
			{
				Title: "Ajustando e Mantendo o Orçamento",
				Content: "Um orçamento não é algo escrito em pedra. Ele deve ser flexível e se adaptar à sua vida. Se você perceber que está gastando muito em uma categoria, veja onde pode fazer pequenos cortes. O objetivo não é se privar de tudo, mas sim ter controle e fazer escolhas conscientes.\n\n" +
					"Revise seu orçamento todo mês. Seus gastos e sua renda podem mudar. O importante é manter o hábito de acompanhar suas finanças.\n\n" +
					"Com o tempo, você verá que ter um orçamento te dá mais liberdade, e não menos. Ele te permite gastar sem culpa nas coisas que você valoriza e, ao mesmo tempo, te deixa tranquilo ao saber que seu futuro financeiro está sendo construído.",
				Quiz: []QuizQuestion{
					{Question: "Com que frequência você deve revisar seu orçamento?", Options: []string{"Uma vez por ano", "A cada 5 anos", "Todo mês", "Nunca"}, CorrectAnswerIndex: 2},
					{Question: "Qual o principal objetivo de um orçamento?", Options: []string{"Impedir você de gastar dinheiro", "Ter controle e fazer escolhas financeiras conscientes", "Apenas guardar dinheiro na poupança", "Impressionar o banco"}, CorrectAnswerIndex: 1},
					{Question: "Se um gasto inesperado acontece, o que você deve fazer?", Options: []string{"Ignorar e fingir que não aconteceu", "Desistir do orçamento para sempre", "Ajustar o orçamento do mês para acomodar o gasto", "Entrar no cheque especial sem pensar"}, CorrectAnswerIndex: 2},
				},
			},
		},
	},
}

// SeedCourse returns the seed course with the given identifier.
func SeedCourse(id string) (Course, bool) {
	for _, c := range SeedCourses {
		if c.ID == id {
			return c, true
		}
	}
	return Course{}, false
}

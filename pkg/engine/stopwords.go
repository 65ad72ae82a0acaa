package engine

// stopWords are the built-in stop lists. Languages without one use the bleve
// stop filter of the same language.
var stopWords = map[string][]string{
	"en": {
		"the", "be", "to", "of", "and", "a", "in", "that", "have", "i", "it", "for", "not", "on",
		"with", "he", "as", "you", "do", "at", "this", "but", "his", "by", "from", "they", "we",
		"say", "her", "she", "or", "an", "will", "my", "one", "all", "would", "there", "their",
		"what", "so", "up", "out", "if", "about", "who", "get", "which", "go", "me", "when", "make",
		"can", "like", "time", "no", "just", "him", "know", "take", "people", "into", "year",
		"your", "good", "some", "could", "them", "see", "other", "than", "then", "now", "look",
		"only", "come", "its", "over", "think", "also", "back", "after", "use", "two", "how", "our",
		"work", "first", "well", "way", "even", "new", "want", "because", "any", "these", "give",
		"day", "most", "us",
	},
	"hu": {
		"a", "abban", "ahhoz", "ahogy", "ahol", "aki", "akik", "akkor", "alatt", "amely", "amelyek",
		"amelyekben", "amelyeket", "amelyet", "amelynek", "ami", "amikor", "amit", "amolyan",
		"amíg", "annak", "arra", "arról", "az", "azok", "azon", "azonban", "azt", "aztán", "azután",
		"azzal", "azért", "be", "belül", "benne", "bár", "cikk", "cikkek", "cikkeket", "csak", "de",
		"e", "ebben", "eddig", "egy", "egyes", "egyetlen", "egyik", "egyre", "egyéb", "egész",
		"ehhez", "ekkor", "el", "ellen", "elsõ", "elég", "elõ", "elõször", "elõtt", "emilyen",
		"ennek", "erre", "ez", "ezek", "ezen", "ezt", "ezzel", "ezért", "fel", "felé", "hanem",
		"hiszen", "hogy", "hogyan", "igen", "ill", "ill.", "illetve", "ilyen", "ilyenkor", "ismét",
		"ison", "itt", "jobban", "jó", "jól", "kell", "kellett", "keressünk", "keresztül", "ki",
		"kívül", "között", "közül", "legalább", "legyen", "lehet", "lehetett", "lenne", "lenni",
		"lesz", "lett", "maga", "magát", "majd", "meg", "mellett", "mely", "melyek", "mert", "mi",
		"mikor", "milyen", "minden", "mindenki", "mindent", "mindig", "mint", "mintha", "mit",
		"mivel", "miért", "most", "már", "más", "másik", "még", "míg", "nagy", "nagyobb", "nagyon",
		"ne", "nekem", "neki", "nem", "nincs", "néha", "néhány", "nélkül", "olyan", "ott", "pedig",
		"persze", "rá", "s", "saját", "sem", "semmi", "sok", "sokat", "sokkal", "szemben",
		"szerint", "szinte", "számára", "talán", "tehát", "teljes", "tovább", "továbbá", "több",
		"ugyanis", "utolsó", "után", "utána", "vagy", "vagyis", "vagyok", "valaki", "valami",
		"valamint", "való", "van", "vannak", "vele", "vissza", "viszont", "volna", "volt", "voltak",
		"voltam", "voltunk", "által", "általában", "át", "én", "éppen", "és", "így", "õ", "õk",
		"õket", "össze", "úgy", "új", "újabb", "újra",
	},
	"pt": {
		"a", "ao", "aos", "aquela", "aquelas", "aquele", "aqueles", "aquilo", "as", "até", "com",
		"como", "da", "das", "de", "dela", "delas", "dele", "deles", "depois", "do", "dos", "e",
		"ela", "elas", "ele", "eles", "em", "entre", "era", "eram", "essa", "essas", "esse",
		"esses", "esta", "estamos", "estas", "estava", "estavam", "este", "esteja", "estejam",
		"estejamos", "estes", "esteve", "estive", "estivemos", "estiver", "estivera", "estiveram",
		"estiverem", "estivermos", "estivesse", "estivessem", "estivéramos", "estivéssemos",
		"estou", "está", "estávamos", "estão", "eu", "foi", "fomos", "for", "fora", "foram",
		"forem", "formos", "fosse", "fossem", "fui", "fôramos", "fôssemos", "haja", "hajam",
		"hajamos", "havemos", "hei", "houve", "houvemos", "houver", "houvera", "houveram",
		"houverei", "houverem", "houveremos", "houveria", "houveriam", "houvermos", "houverá",
		"houverão", "houveríamos", "houvesse", "houvessem", "houvéramos", "houvéssemos", "há",
		"hão", "isso", "isto", "já", "lhe", "lhes", "mais", "mas", "me", "mesmo", "meu", "meus",
		"minha", "minhas", "muito", "na", "nas", "nem", "no", "nos", "nossa", "nossas", "nosso",
		"nossos", "num", "numa", "não", "nós", "o", "os", "ou", "para", "pela", "pelas", "pelo",
		"pelos", "por", "qual", "quando", "que", "quem", "se", "seja", "sejam", "sejamos", "sem",
		"serei", "seremos", "seria", "seriam", "será", "serão", "seríamos", "seu", "seus", "somos",
		"sou", "sua", "suas", "são", "só", "também", "te", "tem", "temos", "tenha", "tenham",
		"tenhamos", "tenho", "terei", "teremos", "teria", "teriam", "terá", "terão", "teríamos",
		"teu", "teus", "teve", "tinha", "tinham", "tive", "tivemos", "tiver", "tivera", "tiveram",
		"tiverem", "tivermos", "tivesse", "tivessem", "tivéramos", "tivéssemos", "tu", "tua",
		"tuas", "tém", "tínhamos", "um", "uma", "você", "vocês", "vos", "à", "às", "éramos",
	},
}

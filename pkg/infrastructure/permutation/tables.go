package permutation

// Keyboard layouts map a key to its neighbours
var (
	qwerty = map[rune]string{
		'1': "2q", '2': "3wq1", '3': "4ew2", '4': "5re3", '5': "6tr4", '6': "7yt5", '7': "8uy6", '8': "9iu7", '9': "0oi8", '0': "po9",
		'q': "12wa", 'w': "3esaq2", 'e': "4rdsw3", 'r': "5tfde4", 't': "6ygfr5", 'y': "7uhgt6", 'u': "8ijhy7", 'i': "9okju8", 'o': "0plki9", 'p': "lo0",
		'a': "qwsz", 's': "edxzaw", 'd': "rfcxse", 'f': "tgvcdr", 'g': "yhbvft", 'h': "ujnbgy", 'j': "ikmnhu", 'k': "olmji", 'l': "kop",
		'z': "asx", 'x': "zsdc", 'c': "xdfv", 'v': "cfgb", 'b': "vghn", 'n': "bhjm", 'm': "njk",
	}
	qwertz = map[rune]string{
		'1': "2q", '2': "3wq1", '3': "4ew2", '4': "5re3", '5': "6tr4", '6': "7zt5", '7': "8uz6", '8': "9iu7", '9': "0oi8", '0': "po9",
		'q': "12wa", 'w': "3esaq2", 'e': "4rdsw3", 'r': "5tfde4", 't': "6zgfr5", 'z': "7uhgt6", 'u': "8ijhz7", 'i': "9okju8", 'o': "0plki9", 'p': "lo0",
		'a': "qwsy", 's': "edxyaw", 'd': "rfcxse", 'f': "tgvcdr", 'g': "zhbvft", 'h': "ujnbgz", 'j': "ikmnhu", 'k': "olmji", 'l': "kop",
		'y': "asx", 'x': "ysdc", 'c': "xdfv", 'v': "cfgb", 'b': "vghn", 'n': "bhjm", 'm': "njk",
	}
	azerty = map[rune]string{
		'1': "2a", '2': "3za1", '3': "4ez2", '4': "5re3", '5': "6tr4", '6': "7yt5", '7': "8uy6", '8': "9iu7", '9': "0oi8", '0': "po9",
		'a': "2zq1", 'z': "3esqa2", 'e': "4rdsz3", 'r': "5tfde4", 't': "6ygfr5", 'y': "7uhgt6", 'u': "8ijhy7", 'i': "9okju8", 'o': "0plki9", 'p': "lo0m",
		'q': "zswa", 's': "edxwqz", 'd': "rfcxse", 'f': "tgvcdr", 'g': "yhbvft", 'h': "ujnbgy", 'j': "iknhu", 'k': "olji", 'l': "kopm", 'm': "lp",
		'w': "sxq", 'x': "wsdc", 'c': "xdfv", 'v': "cfgb", 'b': "vghn", 'n': "bhj",
	}

	keyboards = []map[rune]string{qwerty, qwertz, azerty}
)

// glyphs lists look-alikes per character, ASCII first then Unicode
var glyphs = map[rune][]string{
	'0': {"o"},
	'1': {"l", "i"},
	'3': {"8"},
	'6': {"9"},
	'8': {"3"},
	'9': {"6"},
	'a': {"à", "á", "â", "ã", "ä", "å", "ɑ", "ạ", "ă", "ą"},
	'b': {"d", "lb", "ḃ", "ḅ", "ƅ"},
	'c': {"e", "ç", "ć", "ĉ", "ċ", "č"},
	'd': {"b", "cl", "dl", "ď", "ḋ", "ḍ"},
	'e': {"c", "é", "è", "ê", "ë", "ē", "ĕ", "ė", "ę", "ě"},
	'f': {"ḟ", "ƒ"},
	'g': {"q", "ɢ", "ġ", "ğ", "ģ"},
	'h': {"lh", "ĥ", "ȟ", "ħ", "ḩ"},
	'i': {"1", "l", "í", "ì", "ï", "ı", "ɩ", "ǐ", "ĭ", "ị"},
	'j': {"ʝ", "ĵ", "ǰ"},
	'k': {"lc", "ḳ", "ḵ", "ⱪ", "ķ"},
	'l': {"1", "i", "ɫ", "ł"},
	'm': {"n", "nn", "rn", "rr", "ṁ", "ṃ"},
	'n': {"m", "r", "ń", "ṅ", "ṇ", "ñ", "ņ", "ň"},
	'o': {"0", "ȯ", "ọ", "ỏ", "ơ", "ó", "ö"},
	'p': {"ƿ", "ƥ", "ṕ", "ṗ"},
	'q': {"g", "ʠ"},
	'r': {"ʀ", "ɼ", "ɽ", "ŕ", "ŗ", "ř"},
	's': {"ʂ", "ś", "ṣ", "ṡ", "ș", "ŝ", "š"},
	't': {"ţ", "ŧ", "ṫ", "ṭ", "ț", "ƫ"},
	'u': {"v", "ᴜ", "ǔ", "ŭ", "ü", "ʉ", "ù", "ú", "û", "ũ", "ū", "ų", "ư", "ů", "ű"},
	'v': {"u", "ṿ", "ⱱ", "ᶌ", "ṽ", "ⱴ"},
	'w': {"vv", "ŵ", "ẁ", "ẃ", "ẅ", "ⱳ", "ẇ", "ẉ", "ẘ"},
	'y': {"ʏ", "ý", "ÿ", "ŷ", "ƴ", "ȳ", "ɏ", "ỿ", "ẏ", "ỵ"},
	'z': {"ʐ", "ż", "ź", "ᴢ", "ƶ", "ẓ", "ẕ", "ⱬ"},
}

// glyphPairs are two-character sequences that read as a single character
var glyphPairs = []struct {
	from string
	to   string
}{
	{"rn", "m"},
	{"cl", "d"},
	{"vv", "w"},
}

// latinToCyrillic maps Latin letters to their Cyrillic look-alikes
var latinToCyrillic = map[rune]rune{
	'a': 'а', 'b': 'ь', 'c': 'с', 'd': 'ԁ', 'e': 'е', 'g': 'ԍ', 'h': 'һ',
	'i': 'і', 'j': 'ј', 'k': 'к', 'l': 'ӏ', 'm': 'м', 'o': 'о', 'p': 'р',
	'q': 'ԛ', 's': 'ѕ', 't': 'т', 'v': 'ѵ', 'w': 'ԝ', 'x': 'х', 'y': 'у',
}

// DefaultTLDs is the curated list used by tld-swap
var DefaultTLDs = []string{
	"com", "net", "org", "info", "biz", "co", "io", "us", "uk", "co.uk",
	"de", "eu", "fr", "it", "nl", "es", "ru", "cn", "in", "br",
	"ca", "au", "jp", "me", "tv", "cc", "ws", "app", "dev", "online",
	"site", "xyz", "top", "shop", "store", "cloud",
}

// DefaultDictionary holds keywords commonly glued onto brands in phishing domains
var DefaultDictionary = []string{
	"login", "secure", "account", "support", "verify", "update",
	"signin", "auth", "billing", "payment", "online", "portal",
	"service", "help", "mail",
}

// SubdomainWords are common subdomains that get glued onto the label when
// the separating dot is missed
var SubdomainWords = []string{
	"www", "ww", "www1", "mail", "webmail", "m", "login", "secure", "portal", "smtp",
}

const vowels = "aeiou"

// bitsquatChars is the character set a flipped character must fall into
const bitsquatChars = "abcdefghijklmnopqrstuvwxyz0123456789-"

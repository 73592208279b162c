package language

import "github.com/yisselda/translation-service/internal/domain"

// supported is the table of languages the translation model serves.
var supported = []domain.Language{
	// ISO 639-1
	{Code: "aa", Name: "Afar"},
	{Code: "ab", Name: "Abkhazian"},
	{Code: "ae", Name: "Avestan"},
	{Code: "af", Name: "Afrikaans"},
	{Code: "ak", Name: "Akan"},
	{Code: "am", Name: "Amharic"},
	{Code: "an", Name: "Aragonese"},
	{Code: "ar", Name: "Arabic"},
	{Code: "as", Name: "Assamese"},
	{Code: "av", Name: "Avaric"},
	{Code: "ay", Name: "Aymara"},
	{Code: "az", Name: "Azerbaijani"},
	{Code: "ba", Name: "Bashkir"},
	{Code: "be", Name: "Belarusian"},
	{Code: "bg", Name: "Bulgarian"},
	{Code: "bi", Name: "Bislama"},
	{Code: "bm", Name: "Bambara"},
	{Code: "bn", Name: "Bengali"},
	{Code: "bo", Name: "Tibetan"},
	{Code: "br", Name: "Breton"},
	{Code: "bs", Name: "Bosnian"},
	{Code: "ca", Name: "Catalan"},
	{Code: "ce", Name: "Chechen"},
	{Code: "ch", Name: "Chamorro"},
	{Code: "co", Name: "Corsican"},
	{Code: "cr", Name: "Cree"},
	{Code: "cs", Name: "Czech"},
	{Code: "cu", Name: "Church Slavic"},
	{Code: "cv", Name: "Chuvash"},
	{Code: "cy", Name: "Welsh"},
	{Code: "da", Name: "Danish"},
	{Code: "de", Name: "German"},
	{Code: "dv", Name: "Divehi"},
	{Code: "dz", Name: "Dzongkha"},
	{Code: "ee", Name: "Ewe"},
	{Code: "el", Name: "Greek"},
	{Code: "en", Name: "English"},
	{Code: "eo", Name: "Esperanto"},
	{Code: "es", Name: "Spanish"},
	{Code: "et", Name: "Estonian"},
	{Code: "eu", Name: "Basque"},
	{Code: "fa", Name: "Persian"},
	{Code: "ff", Name: "Fulah"},
	{Code: "fi", Name: "Finnish"},
	{Code: "fj", Name: "Fijian"},
	{Code: "fo", Name: "Faroese"},
	{Code: "fr", Name: "French"},
	{Code: "fy", Name: "Western Frisian"},
	{Code: "ga", Name: "Irish"},
	{Code: "gd", Name: "Scottish Gaelic"},
	{Code: "gl", Name: "Galician"},
	{Code: "gn", Name: "Guarani"},
	{Code: "gu", Name: "Gujarati"},
	{Code: "gv", Name: "Manx"},
	{Code: "ha", Name: "Hausa"},
	{Code: "he", Name: "Hebrew"},
	{Code: "hi", Name: "Hindi"},
	{Code: "ho", Name: "Hiri Motu"},
	{Code: "hr", Name: "Croatian"},
	{Code: "ht", Name: "Haitian Creole"},
	{Code: "hu", Name: "Hungarian"},
	{Code: "hy", Name: "Armenian"},
	{Code: "hz", Name: "Herero"},
	{Code: "ia", Name: "Interlingua"},
	{Code: "id", Name: "Indonesian"},
	{Code: "ie", Name: "Interlingue"},
	{Code: "ig", Name: "Igbo"},
	{Code: "ii", Name: "Sichuan Yi"},
	{Code: "ik", Name: "Inupiaq"},
	{Code: "io", Name: "Ido"},
	{Code: "is", Name: "Icelandic"},
	{Code: "it", Name: "Italian"},
	{Code: "iu", Name: "Inuktitut"},
	{Code: "ja", Name: "Japanese"},
	{Code: "jv", Name: "Javanese"},
	{Code: "ka", Name: "Georgian"},
	{Code: "kg", Name: "Kongo"},
	{Code: "ki", Name: "Kikuyu"},
	{Code: "kj", Name: "Kuanyama"},
	{Code: "kk", Name: "Kazakh"},
	{Code: "kl", Name: "Kalaallisut"},
	{Code: "km", Name: "Khmer"},
	{Code: "kn", Name: "Kannada"},
	{Code: "ko", Name: "Korean"},
	{Code: "kr", Name: "Kanuri"},
	{Code: "ks", Name: "Kashmiri"},
	{Code: "ku", Name: "Kurdish"},
	{Code: "kv", Name: "Komi"},
	{Code: "kw", Name: "Cornish"},
	{Code: "ky", Name: "Kyrgyz"},
	{Code: "la", Name: "Latin"},
	{Code: "lb", Name: "Luxembourgish"},
	{Code: "lg", Name: "Ganda"},
	{Code: "li", Name: "Limburgish"},
	{Code: "ln", Name: "Lingala"},
	{Code: "lo", Name: "Lao"},
	{Code: "lt", Name: "Lithuanian"},
	{Code: "lu", Name: "Luba-Katanga"},
	{Code: "lv", Name: "Latvian"},
	{Code: "mg", Name: "Malagasy"},
	{Code: "mh", Name: "Marshallese"},
	{Code: "mi", Name: "Maori"},
	{Code: "mk", Name: "Macedonian"},
	{Code: "ml", Name: "Malayalam"},
	{Code: "mn", Name: "Mongolian"},
	{Code: "mr", Name: "Marathi"},
	{Code: "ms", Name: "Malay"},
	{Code: "mt", Name: "Maltese"},
	{Code: "my", Name: "Burmese"},
	{Code: "na", Name: "Nauru"},
	{Code: "nb", Name: "Norwegian Bokmål"},
	{Code: "nd", Name: "North Ndebele"},
	{Code: "ne", Name: "Nepali"},
	{Code: "ng", Name: "Ndonga"},
	{Code: "nl", Name: "Dutch"},
	{Code: "nn", Name: "Norwegian Nynorsk"},
	{Code: "no", Name: "Norwegian"},
	{Code: "nr", Name: "South Ndebele"},
	{Code: "nv", Name: "Navajo"},
	{Code: "ny", Name: "Nyanja"},
	{Code: "oc", Name: "Occitan"},
	{Code: "oj", Name: "Ojibwa"},
	{Code: "om", Name: "Oromo"},
	{Code: "or", Name: "Odia"},
	{Code: "os", Name: "Ossetian"},
	{Code: "pa", Name: "Punjabi"},
	{Code: "pi", Name: "Pali"},
	{Code: "pl", Name: "Polish"},
	{Code: "ps", Name: "Pashto"},
	{Code: "pt", Name: "Portuguese"},
	{Code: "qu", Name: "Quechua"},
	{Code: "rm", Name: "Romansh"},
	{Code: "rn", Name: "Rundi"},
	{Code: "ro", Name: "Romanian"},
	{Code: "ru", Name: "Russian"},
	{Code: "rw", Name: "Kinyarwanda"},
	{Code: "sa", Name: "Sanskrit"},
	{Code: "sc", Name: "Sardinian"},
	{Code: "sd", Name: "Sindhi"},
	{Code: "se", Name: "Northern Sami"},
	{Code: "sg", Name: "Sango"},
	{Code: "si", Name: "Sinhala"},
	{Code: "sk", Name: "Slovak"},
	{Code: "sl", Name: "Slovenian"},
	{Code: "sm", Name: "Samoan"},
	{Code: "sn", Name: "Shona"},
	{Code: "so", Name: "Somali"},
	{Code: "sq", Name: "Albanian"},
	{Code: "sr", Name: "Serbian"},
	{Code: "ss", Name: "Swati"},
	{Code: "st", Name: "Southern Sotho"},
	{Code: "su", Name: "Sundanese"},
	{Code: "sv", Name: "Swedish"},
	{Code: "sw", Name: "Swahili"},
	{Code: "ta", Name: "Tamil"},
	{Code: "te", Name: "Telugu"},
	{Code: "tg", Name: "Tajik"},
	{Code: "th", Name: "Thai"},
	{Code: "ti", Name: "Tigrinya"},
	{Code: "tk", Name: "Turkmen"},
	{Code: "tl", Name: "Tagalog"},
	{Code: "tn", Name: "Tswana"},
	{Code: "to", Name: "Tongan"},
	{Code: "tr", Name: "Turkish"},
	{Code: "ts", Name: "Tsonga"},
	{Code: "tt", Name: "Tatar"},
	{Code: "tw", Name: "Twi"},
	{Code: "ty", Name: "Tahitian"},
	{Code: "ug", Name: "Uyghur"},
	{Code: "uk", Name: "Ukrainian"},
	{Code: "ur", Name: "Urdu"},
	{Code: "uz", Name: "Uzbek"},
	{Code: "ve", Name: "Venda"},
	{Code: "vi", Name: "Vietnamese"},
	{Code: "vo", Name: "Volapük"},
	{Code: "wa", Name: "Walloon"},
	{Code: "wo", Name: "Wolof"},
	{Code: "xh", Name: "Xhosa"},
	{Code: "yi", Name: "Yiddish"},
	{Code: "yo", Name: "Yoruba"},
	{Code: "za", Name: "Zhuang"},
	{Code: "zh", Name: "Chinese"},
	{Code: "zu", Name: "Zulu"},

	// ISO 639-3, no two-letter code
	{Code: "ast", Name: "Asturian"},
	{Code: "ceb", Name: "Cebuano"},
	{Code: "fil", Name: "Filipino"},
	{Code: "frp", Name: "Franco-Provençal"},
	{Code: "fur", Name: "Friulian"},
	{Code: "haw", Name: "Hawaiian"},
	{Code: "hmn", Name: "Hmong"},
	{Code: "lad", Name: "Ladino"},
	{Code: "lij", Name: "Ligurian"},
	{Code: "lld", Name: "Ladin"},
	{Code: "lmo", Name: "Lombard"},
	{Code: "mwl", Name: "Mirandese"},
	{Code: "nap", Name: "Neapolitan"},
	{Code: "pap", Name: "Papiamento"},
	{Code: "scn", Name: "Sicilian"},
	{Code: "vec", Name: "Venetian"},
	{Code: "yue", Name: "Cantonese"},

	// Regional variants
	{Code: "en_GB", Name: "English (United Kingdom)"},
	{Code: "en_US", Name: "English (United States)"},
	{Code: "es_AR", Name: "Spanish (Argentina)"},
	{Code: "es_ES", Name: "Spanish (Spain)"},
	{Code: "es_MX", Name: "Spanish (Mexico)"},
	{Code: "fr_BE", Name: "French (Belgium)"},
	{Code: "fr_CA", Name: "French (Canada)"},
	{Code: "fr_FR", Name: "French (France)"},
	{Code: "pt_BR", Name: "Portuguese (Brazil)"},
	{Code: "pt_PT", Name: "Portuguese (Portugal)"},
	{Code: "zh_CN", Name: "Chinese (Simplified)"},
	{Code: "zh_TW", Name: "Chinese (Traditional)"},
}

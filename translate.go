package predictionguard

import (
	"context"
	"net/http"
)

// TranslatePath is the path of the translate endpoint.
const TranslatePath = "/translate"

// Language is an ISO 639-3 language code as sent to the translate endpoint.
//
// The constants cover the languages the service documents. Any other code is
// a valid Language and passes through unchanged.
type Language string

// Supported languages.
const (
	LanguageAfrikaans   Language = "afr"
	LanguageAmharic     Language = "amh"
	LanguageArabic      Language = "ara"
	LanguageArmenian    Language = "hye"
	LanguageAzerbaijani Language = "aze"
	LanguageBasque      Language = "eus"
	LanguageBelarusian  Language = "bel"
	LanguageBengali     Language = "ben"
	LanguageBosnian     Language = "bos"
	LanguageCatalan     Language = "cat"
	LanguageChechen     Language = "che"
	LanguageCherokee    Language = "chr"
	LanguageChinese     Language = "zho"
	LanguageCroatian    Language = "hrv"
	LanguageCzech       Language = "ces"
	LanguageDanish      Language = "dan"
	LanguageDutch       Language = "nld"
	LanguageEnglish     Language = "eng"
	LanguageEstonian    Language = "est"
	LanguageFijian      Language = "fij"
	LanguageFilipino    Language = "fil"
	LanguageFinnish     Language = "fin"
	LanguageFrench      Language = "fra"
	LanguageGalician    Language = "glg"
	LanguageGeorgian    Language = "kat"
	LanguageGerman      Language = "deu"
	LanguageGreek       Language = "ell"
	LanguageGujarati    Language = "guj"
	LanguageHaitian     Language = "hat"
	LanguageHebrew      Language = "heb"
	LanguageHindi       Language = "hin"
	LanguageHungarian   Language = "hun"
	LanguageIcelandic   Language = "isl"
	LanguageIndonesian  Language = "ind"
	LanguageIrish       Language = "gle"
	LanguageItalian     Language = "ita"
	LanguageJapanese    Language = "jpn"
	LanguageKannada     Language = "kan"
	LanguageKazakh      Language = "kaz"
	LanguageKorean      Language = "kor"
	LanguageLatvian     Language = "lav"
	LanguageLithuanian  Language = "lit"
	LanguageMacedonian  Language = "mkd"
	LanguageMalay       Language = "msa"
	LanguageMalayStd    Language = "zlm"
	LanguageMalayalam   Language = "mal"
	LanguageMaltese     Language = "mlt"
	LanguageMarathi     Language = "mar"
	LanguageNepali      Language = "nep"
	LanguageNorwegian   Language = "nor"
	LanguagePersian     Language = "fas"
	LanguagePolish      Language = "pol"
	LanguagePortuguese  Language = "por"
	LanguageRomanian    Language = "ron"
	LanguageRussian     Language = "rus"
	LanguageSamoan      Language = "smo"
	LanguageSerbian     Language = "srp"
	LanguageSlovak      Language = "slk"
	LanguageSlovenian   Language = "slv"
	LanguageSlavonic    Language = "chu"
	LanguageSpanish     Language = "spa"
	LanguageSwahili     Language = "swh"
	LanguageSwedish     Language = "swe"
	LanguageTamil       Language = "tam"
	LanguageTelugu      Language = "tel"
	LanguageThai        Language = "tha"
	LanguageTurkish     Language = "tur"
	LanguageUkrainian   Language = "ukr"
	LanguageUrdu        Language = "urd"
	LanguageWelsh       Language = "cym"
	LanguageVietnamese  Language = "vie"
)

// languageNames maps each supported code to its English name.
var languageNames = map[Language]string{
	LanguageAfrikaans:   "Afrikaans",
	LanguageAmharic:     "Amharic",
	LanguageArabic:      "Arabic",
	LanguageArmenian:    "Armenian",
	LanguageAzerbaijani: "Azerbaijani",
	LanguageBasque:      "Basque",
	LanguageBelarusian:  "Belarusian",
	LanguageBengali:     "Bengali",
	LanguageBosnian:     "Bosnian",
	LanguageCatalan:     "Catalan",
	LanguageChechen:     "Chechen",
	LanguageCherokee:    "Cherokee",
	LanguageChinese:     "Chinese",
	LanguageCroatian:    "Croatian",
	LanguageCzech:       "Czech",
	LanguageDanish:      "Danish",
	LanguageDutch:       "Dutch",
	LanguageEnglish:     "English",
	LanguageEstonian:    "Estonian",
	LanguageFijian:      "Fijian",
	LanguageFilipino:    "Filipino",
	LanguageFinnish:     "Finnish",
	LanguageFrench:      "French",
	LanguageGalician:    "Galician",
	LanguageGeorgian:    "Georgian",
	LanguageGerman:      "German",
	LanguageGreek:       "Greek",
	LanguageGujarati:    "Gujarati",
	LanguageHaitian:     "Haitian",
	LanguageHebrew:      "Hebrew",
	LanguageHindi:       "Hindi",
	LanguageHungarian:   "Hungarian",
	LanguageIcelandic:   "Icelandic",
	LanguageIndonesian:  "Indonesian",
	LanguageIrish:       "Irish",
	LanguageItalian:     "Italian",
	LanguageJapanese:    "Japanese",
	LanguageKannada:     "Kannada",
	LanguageKazakh:      "Kazakh",
	LanguageKorean:      "Korean",
	LanguageLatvian:     "Latvian",
	LanguageLithuanian:  "Lithuanian",
	LanguageMacedonian:  "Macedonian",
	LanguageMalay:       "Malay",
	LanguageMalayStd:    "Standard Malay",
	LanguageMalayalam:   "Malayalam",
	LanguageMaltese:     "Maltese",
	LanguageMarathi:     "Marathi",
	LanguageNepali:      "Nepali",
	LanguageNorwegian:   "Norwegian",
	LanguagePersian:     "Persian",
	LanguagePolish:      "Polish",
	LanguagePortuguese:  "Portuguese",
	LanguageRomanian:    "Romanian",
	LanguageRussian:     "Russian",
	LanguageSamoan:      "Samoan",
	LanguageSerbian:     "Serbian",
	LanguageSlovak:      "Slovak",
	LanguageSlovenian:   "Slovenian",
	LanguageSlavonic:    "Church Slavonic",
	LanguageSpanish:     "Spanish",
	LanguageSwahili:     "Swahili",
	LanguageSwedish:     "Swedish",
	LanguageTamil:       "Tamil",
	LanguageTelugu:      "Telugu",
	LanguageThai:        "Thai",
	LanguageTurkish:     "Turkish",
	LanguageUkrainian:   "Ukrainian",
	LanguageUrdu:        "Urdu",
	LanguageWelsh:       "Welsh",
	LanguageVietnamese:  "Vietnamese",
}

// ParseLanguage maps a wire code to a Language. Unknown codes are returned
// as-is and report IsKnown() == false.
func ParseLanguage(s string) Language {
	return Language(s)
}

// String returns the wire code.
func (l Language) String() string {
	return string(l)
}

// IsKnown reports whether l is one of the supported languages.
func (l Language) IsKnown() bool {
	_, ok := languageNames[l]
	return ok
}

// Name returns the English name of a supported language, or the raw code
// for an unknown one.
func (l Language) Name() string {
	if n, ok := languageNames[l]; ok {
		return n
	}
	return string(l)
}

// TranslateRequest is the request body for the translate endpoint.
type TranslateRequest struct {
	Text                string   `json:"text"`
	SourceLang          Language `json:"source_lang"`
	TargetLang          Language `json:"target_lang"`
	UseThirdPartyEngine bool     `json:"use_third_party_engine"`
}

// NewTranslateRequest creates a translate request. useThirdPartyEngine lets
// the service consult engines such as DeepL and Google alongside its own
// models.
func NewTranslateRequest(text string, source, target Language, useThirdPartyEngine bool) TranslateRequest {
	return TranslateRequest{
		Text:                text,
		SourceLang:          source,
		TargetLang:          target,
		UseThirdPartyEngine: useThirdPartyEngine,
	}
}

// Translation is one candidate translation.
type Translation struct {
	Score       float64 `json:"score"`
	Translation string  `json:"translation"`
	Model       string  `json:"model"`
	Status      string  `json:"status"`
}

// TranslateResponse is returned from the translate endpoint.
type TranslateResponse struct {
	ID                   string        `json:"id"`
	Object               string        `json:"object"`
	Created              Timestamp     `json:"created"`
	BestTranslation      string        `json:"best_translation"`
	BestScore            float64       `json:"best_score"`
	BestTranslationModel string        `json:"best_translation_model"`
	Translations         []Translation `json:"translations"`
}

// Translate calls the translate endpoint.
func (c *Client) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	return doJSON[TranslateResponse](ctx, c, "translate", http.MethodPost, TranslatePath, req, "")
}

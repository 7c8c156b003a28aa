package knowledge

import (
	"strings"

	"github.com/legalia/intake-api/internal/models"
)

// categorySignals maps each category to the keywords that suggest it. The
// detector is a coarse heuristic for callers that did not supply a category;
// it makes no correctness guarantee.
var categorySignals = []struct {
	category models.LegalCategory
	keywords []string
}{
	{models.CategoryLabor, []string{"despido", "trabajo", "empleador", "sueldo", "salario", "indemnización laboral", "telegrama"}},
	{models.CategoryFamily, []string{"divorcio", "alimentos", "hijos", "matrimonio", "cónyuge", "custodia", "régimen de comunicación"}},
	{models.CategoryPenal, []string{"denuncia", "delito", "estafa", "robo", "hurto", "fiscalía", "amenaza"}},
	{models.CategoryCommercial, []string{"sociedad", "cheque", "empresa", "comercio", "consumidor", "factura", "quiebra"}},
	{models.CategoryAdministrative, []string{"multa", "tránsito", "municipalidad", "estado", "organismo", "trámite", "jubilación"}},
	{models.CategoryCivil, []string{"contrato", "alquiler", "daños", "desalojo", "propiedad", "sucesión", "deuda"}},
}

// DetectCategory guesses the legal category of a free-text question from
// category-defining keywords. The first category with any keyword present in
// the text wins; ok is false when nothing matches.
func DetectCategory(questionText string) (models.LegalCategory, bool) {
	normalized := strings.ToLower(questionText)
	for _, signal := range categorySignals {
		for _, keyword := range signal.keywords {
			if strings.Contains(normalized, keyword) {
				return signal.category, true
			}
		}
	}
	return "", false
}

package factory

import (
	"fmt"

	"github.com/ilkoid/localgen/pkg/config"
	"github.com/ilkoid/localgen/pkg/llm"
	"github.com/ilkoid/localgen/pkg/llm/openai"
	"github.com/ilkoid/localgen/pkg/llm/textgen"
)

// NewProvider создает провайдера на основе конфигурации модели.
//
// Пустой provider трактуется как "textgen" (см. ModelDef.GetDefaults).
// Masking передаётся только textgen-клиенту: он один логирует сырые
// HTTP заголовки и тело ответа.
func NewProvider(modelDef config.ModelDef, masking config.MaskingConfig) (llm.Provider, error) {
	switch modelDef.GetDefaults().Provider {
	case "textgen":
		return textgen.NewClient(modelDef, masking), nil

	case "zai", "openai", "deepseek":
		return openai.NewClient(modelDef), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s", modelDef.Provider)
	}
}

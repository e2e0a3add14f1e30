package sources

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ilkoid/localgen/pkg/s3storage"
)

// S3Source — загрузка промптов из объектного хранилища.
//
// Ищет объекты по ключу <prefix>/<promptID>.yaml. Принимает
// s3storage.ClientInterface, а не конкретный клиент — для мокания
// в тестах (Rule 9).
type S3Source struct {
	client  s3storage.ClientInterface
	prefix  string
	timeout time.Duration
}

// NewS3Source создаёт источник промптов из S3.
//
// Параметры:
//   - client: клиент хранилища
//   - prefix: префикс объектов (например, "prompts")
//
// Интерфейс источника не принимает context, поэтому таймаут операций
// фиксирован внутри источника.
func NewS3Source(client s3storage.ClientInterface, prefix string) *S3Source {
	return &S3Source{
		client:  client,
		prefix:  strings.TrimSuffix(prefix, "/"),
		timeout: 30 * time.Second,
	}
}

// Load скачивает и парсит промпт из хранилища.
//
// Возвращает *PromptData для избежания циклического импорта.
func (s *S3Source) Load(promptID string) (*PromptData, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	key := path.Join(s.prefix, promptID+".yaml")

	data, err := s.client.DownloadFile(ctx, key)
	if err != nil {
		// minio не даёт типизированной ошибки через наш интерфейс,
		// поэтому любой сбой скачивания трактуем как отсутствие
		return nil, fmt.Errorf("object %s: %w: %v", key, ErrNotFound, err)
	}

	var file PromptData
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse prompt YAML from %s: %w", key, err)
	}

	return &file, nil
}

// List возвращает отсортированные ID всех промптов под префиксом.
func (s *S3Source) List() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	objects, err := s.client.ListFiles(ctx, s.prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts in s3: %w", err)
	}

	var ids []string
	for _, obj := range objects {
		name := path.Base(obj.Key)
		if !strings.HasSuffix(name, ".yaml") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".yaml"))
	}

	sort.Strings(ids)
	return ids, nil
}

package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"devconnector/internal/domain"
)

// wrapWrite 依赖 gorm.Config.TranslateError 把唯一约束冲突翻译成 gorm.ErrDuplicatedKey
func wrapWrite(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}

package store

import (
	"time"

	"gitee.com/czyczk/chain-auth-gateway/pkg/errorcode"
	"gitee.com/czyczk/chain-auth-gateway/pkg/models/session"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSessionStore 是 `SessionStore` 的数据库实现，用于让进程重启不丢失活动会话。同账户迁移的原子性由数据库事务加行锁保证。
type GormSessionStore struct {
	db *gorm.DB
}

func NewGormSessionStore(db *gorm.DB) (*GormSessionStore, error) {
	if err := db.AutoMigrate(&SessionDB{}, &AccountSequenceDB{}); err != nil {
		return nil, errors.Wrap(err, "无法迁移会话存储表结构")
	}

	return &GormSessionStore{db: db}, nil
}

// 原子地替换账户的活动会话槽。先前的活动会话在同一事务内被标记为已吊销。
func (s *GormSessionStore) PutSession(sess *session.Session) (*session.Session, error) {
	var prior *session.Session

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var priorDB SessionDB
		dbResult := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("account_identity = ? AND revoked = ?", sess.AccountIdentity, false).
			Take(&priorDB)
		if dbResult.Error == nil {
			priorDB.Revoked = true
			if err := tx.Model(&SessionDB{}).Where("id = ?", priorDB.ID).Update("revoked", true).Error; err != nil {
				return errors.Wrap(err, "无法吊销账户先前的会话")
			}
			prior = priorDB.ToModel()
		} else if errors.Cause(dbResult.Error) != gorm.ErrRecordNotFound {
			return errors.Wrap(dbResult.Error, "无法查询账户先前的会话")
		}

		if err := tx.Create(NewSessionDBFromModel(sess)).Error; err != nil {
			return errors.Wrap(err, "无法写入新会话")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return prior, nil
}

func (s *GormSessionStore) GetSession(sessionID string) (*session.Session, error) {
	var sessionDB SessionDB
	dbResult := s.db.Where("id = ?", sessionID).Take(&sessionDB)
	if dbResult.Error != nil {
		if errors.Cause(dbResult.Error) == gorm.ErrRecordNotFound {
			return nil, errorcode.ErrorNotFound
		} else {
			return nil, errors.Wrap(dbResult.Error, "无法从数据库中获取会话")
		}
	}

	return sessionDB.ToModel(), nil
}

func (s *GormSessionStore) RevokeSessionByAccount(accountIdentity string) error {
	// 吊销不存在或已吊销的会话不是错误，影响 0 行即为幂等的成功
	dbResult := s.db.Model(&SessionDB{}).
		Where("account_identity = ? AND revoked = ?", accountIdentity, false).
		Update("revoked", true)
	if dbResult.Error != nil {
		return errors.Wrap(dbResult.Error, "无法吊销账户会话")
	}

	return nil
}

func (s *GormSessionStore) CheckAndSetSequence(accountIdentity string, seq uint64) (bool, error) {
	accepted := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var seqDB AccountSequenceDB
		dbResult := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("account_identity = ?", accountIdentity).
			Take(&seqDB)
		if dbResult.Error == nil {
			if seq <= seqDB.LastSequence {
				return nil
			}
		} else if errors.Cause(dbResult.Error) != gorm.ErrRecordNotFound {
			return errors.Wrap(dbResult.Error, "无法查询账户序列号记录")
		}

		dbResult = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_identity"}},
			UpdateAll: true,
		}).Create(&AccountSequenceDB{AccountIdentity: accountIdentity, LastSequence: seq})
		if dbResult.Error != nil {
			return errors.Wrap(dbResult.Error, "无法记录账户序列号")
		}

		accepted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return accepted, nil
}

func (s *GormSessionStore) EvictExpired(now time.Time) (int, error) {
	dbResult := s.db.Where("expires_at < ?", now).Delete(&SessionDB{})
	if dbResult.Error != nil {
		return 0, errors.Wrap(dbResult.Error, "无法清除过期会话")
	}

	return int(dbResult.RowsAffected), nil
}

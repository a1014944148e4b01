package hash

import "golang.org/x/crypto/bcrypt"

const DefaultCost = 12

type Hasher struct {
	Cost int
}

func New(cost int) Hasher {
	if cost == 0 {
		cost = DefaultCost
	}
	return Hasher{Cost: cost}
}

// HashPassword returns a bcrypt hash with the salt embedded.
func (h Hasher) HashPassword(password string) (string, error) {
	hashbytes, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}

	return string(hashbytes), nil
}

func (h Hasher) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

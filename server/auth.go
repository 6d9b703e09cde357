package server

import (
	"golang.org/x/crypto/bcrypt"
)

const usersCollection = "users"

// hashPassword replaces a plain text password with its bcrypt hash
func hashPassword(doc Document) error {
	pw, ok := doc["password"].(string)
	if !ok || pw == "" || isHash(pw) {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	doc["password"] = string(hash)
	return nil
}

func isHash(pw string) bool {
	_, err := bcrypt.Cost([]byte(pw))
	return err == nil
}

// checkPassword reports whether password matches the stored hash
func checkPassword(doc Document, password string) bool {
	hash, ok := doc["password"].(string)
	if !ok || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// public strips fields that never leave the backend
func public(collection string, doc Document) Document {
	if collection != usersCollection {
		return doc
	}
	out := doc.clone()
	delete(out, "password")
	return out
}

// emailTaken reports whether another user registered email
func emailTaken(users []Document, email, exceptID string) bool {
	for _, u := range users {
		if u.ID() != exceptID && stringify(u["email"]) == email {
			return true
		}
	}
	return false
}

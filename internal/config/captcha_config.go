package config

type CaptchaConfig interface {
	GetReCaptchaSecret() string
	GetReCaptchaSiteKey() string
	GetReCaptchaMinScore() float64
}

type Captcha struct{}

var _ CaptchaConfig = Captcha{}

func (Captcha) GetReCaptchaSecret() string {
	return GetEnv("RECAPTCHA_SECRET", "")
}

func (Captcha) GetReCaptchaSiteKey() string {
	return GetEnv("RECAPTCHA_SITE_KEY", "")
}

func (Captcha) GetReCaptchaMinScore() float64 {
	return GetEnvFloat("RECAPTCHA_MIN_SCORE", 0.5)
}

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newCognitoClient = func(cfg aws.Config, optFns ...func(*cip.Options)) cognitoAPI {
		return cip.NewFromConfig(cfg, optFns...)
	}
)

type cognitoAPI interface {
	InitiateAuth(ctx context.Context, in *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
}

// CognitoConfig selects the user pool client. Endpoint, AccessKeyID and
// SecretAccessKey are optional; without keys the calls are unsigned.
type CognitoConfig struct {
	Region          string
	ClientID        string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// CognitoProvider implements IdentityProvider with the public Cognito
// USER_PASSWORD_AUTH and REFRESH_TOKEN_AUTH flows.
type CognitoProvider struct {
	client   cognitoAPI
	clientID string
}

func NewCognitoProvider(ctx context.Context, c CognitoConfig) (*CognitoProvider, error) {
	var creds aws.CredentialsProvider = aws.AnonymousCredentials{}
	if c.AccessKeyID != "" && c.SecretAccessKey != "" {
		creds = credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, "")
	}

	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(c.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, err
	}

	client := newCognitoClient(cfg, func(o *cip.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
	})

	return &CognitoProvider{client: client, clientID: c.ClientID}, nil
}

func (p *CognitoProvider) InitiateAuth(ctx context.Context, username, password string) (Tokens, error) {
	return p.initiate(ctx, types.AuthFlowTypeUserPasswordAuth, map[string]string{
		"USERNAME": username,
		"PASSWORD": password,
	})
}

func (p *CognitoProvider) RefreshAuth(ctx context.Context, refreshToken string) (Tokens, error) {
	return p.initiate(ctx, types.AuthFlowTypeRefreshTokenAuth, map[string]string{
		"REFRESH_TOKEN": refreshToken,
	})
}

func (p *CognitoProvider) initiate(ctx context.Context, flow types.AuthFlowType, params map[string]string) (Tokens, error) {
	out, err := p.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow:       flow,
		ClientId:       aws.String(p.clientID),
		AuthParameters: params,
	})
	if err != nil {
		return Tokens{}, classifyCognitoError(err)
	}

	if out.ChallengeName != "" {
		return Tokens{}, fmt.Errorf("unexpected challenge %s", out.ChallengeName)
	}
	r := out.AuthenticationResult
	if r == nil {
		return Tokens{}, errors.New("empty authentication result")
	}

	return Tokens{
		AccessToken:  aws.ToString(r.AccessToken),
		RefreshToken: aws.ToString(r.RefreshToken),
		IDToken:      aws.ToString(r.IdToken),
		TokenType:    aws.ToString(r.TokenType),
		ExpiresIn:    r.ExpiresIn,
	}, nil
}

func classifyCognitoError(err error) error {
	var (
		notAuthorized *types.NotAuthorizedException
		notFound      *types.UserNotFoundException
		notConfirmed  *types.UserNotConfirmedException
		resetRequired *types.PasswordResetRequiredException
	)
	switch {
	case errors.As(err, &notAuthorized),
		errors.As(err, &notFound),
		errors.As(err, &notConfirmed),
		errors.As(err, &resetRequired):
		return fmt.Errorf("%w: %v", ErrRejected, err)
	}
	return err
}

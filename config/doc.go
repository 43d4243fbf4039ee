// Package config loads rxkit service configuration with viper.
//
// Values come from a YAML file, then from the process environment and an
// optional .env file. Environment variables map onto nested keys by
// splitting on underscores, so STREAM_BUFFER_SIZE sets stream.buffer_size
// and LOGGING_LEVEL sets logging.level.
//
//	var cfg config.ServiceConfig
//	if err := config.Load("prices", &cfg); err != nil {
//	    return err
//	}
package config
